package middleware

import (
	"net"
	"net/http"
	"sort"
	"strings"
)

// Mount binds a handler to a path prefix, optionally restricted to a host.
type Mount struct {
	Host    string
	Path    string
	Handler http.Handler
}

// URLMap dispatches to the mount with the most specific host and the
// longest path prefix matching the request. The matched prefix is stripped
// from the path the mounted handler sees.
type URLMap struct {
	mounts []Mount
}

// NewURLMap returns a URLMap serving mounts.
func NewURLMap(mounts ...Mount) *URLMap {
	m := &URLMap{}
	for _, mt := range mounts {
		m.Mount(mt.Host, mt.Path, mt.Handler)
	}
	return m
}

// Mount adds h under host and path. An empty host matches any host.
func (m *URLMap) Mount(host, path string, h http.Handler) *URLMap {
	m.mounts = append(m.mounts, Mount{
		Host:    strings.ToLower(host),
		Path:    cleanPrefix(path),
		Handler: h,
	})
	sort.SliceStable(m.mounts, func(i, j int) bool {
		a, b := m.mounts[i], m.mounts[j]
		if (a.Host != "") != (b.Host != "") {
			return a.Host != ""
		}
		if len(a.Host) != len(b.Host) {
			return len(a.Host) > len(b.Host)
		}
		return len(a.Path) > len(b.Path)
	})
	return m
}

// Mounts returns the mounts in matching order.
func (m *URLMap) Mounts() []Mount {
	return append([]Mount(nil), m.mounts...)
}

func (m *URLMap) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	host := requestHost(r)
	for _, mt := range m.mounts {
		if mt.Host != "" && mt.Host != host {
			continue
		}
		rest, ok := matchPrefix(r.URL.Path, mt.Path)
		if !ok || mt.Handler == nil {
			continue
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = rest
		r2.URL.RawPath = ""
		mt.Handler.ServeHTTP(w, r2)
		return
	}
	http.NotFound(w, r)
}

// cleanPrefix returns path with a leading slash and no trailing slash,
// except for the root which stays "/".
func cleanPrefix(path string) string {
	return "/" + strings.Trim(path, "/")
}

func matchPrefix(path, prefix string) (string, bool) {
	if prefix == "/" {
		return path, true
	}
	if path == prefix {
		return "/", true
	}
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix):], true
	}
	return "", false
}

func requestHost(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}
