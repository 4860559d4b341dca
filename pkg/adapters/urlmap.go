package adapters

import (
	"strings"

	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/middleware"
)

// urlMapWrapper lists one entry per mount, in matching order.
type urlMapWrapper struct {
	graph.Base
	m *middleware.URLMap
}

func newURLMapWrapper(_ *graph.Registry, h any) graph.Wrapper {
	m, ok := graph.Embedded[middleware.URLMap](h)
	if !ok {
		return nil
	}
	return &urlMapWrapper{Base: graph.Base{H: h}, m: m}
}

func (w *urlMapWrapper) Children() []any {
	var out []any
	for _, mt := range w.m.Mounts() {
		if mt.Handler == nil {
			continue
		}
		out = append(out, graph.NewEntry(MountLabel(mt.Host, mt.Path), mt.Handler))
	}
	return out
}

// MountLabel is "http[s]://host/path" for host bound mounts and the bare
// path otherwise.
func MountLabel(host, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if host == "" {
		return path
	}
	return "http[s]://" + host + path
}
