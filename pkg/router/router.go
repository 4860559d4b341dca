// Package router is a small verb and path router. Routes are written as
// path templates (see package pattern) and matched in registration order.
package router

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/pattern"
)

// Route is one registered route.
type Route struct {
	Method   string
	Template string
	Pattern  *regexp.Regexp
	Keys     []string
	Handler  http.Handler
}

// Router dispatches on method and path. The zero value is ready to use;
// routes should all be added before the router starts serving.
type Router struct {
	// Next serves requests no route matched. Without it they get a 404.
	Next http.Handler
	// Static is a directory whose files are served before routes are tried.
	Static string

	routes []*Route
}

// New returns a router handing unmatched requests to next, which may be nil.
func New(next http.Handler) *Router {
	return &Router{Next: next}
}

// AddRoute registers h for method and template.
func (rt *Router) AddRoute(method, template string, h http.Handler) error {
	if method == "" {
		return errors.New(errors.ErrInvalidInput, "route method is empty")
	}
	if h == nil {
		return errors.Newf(errors.ErrInvalidInput, "route %s %s has no handler", method, template)
	}
	re, keys, err := pattern.Compile(template)
	if err != nil {
		return err
	}
	rt.routes = append(rt.routes, &Route{
		Method:   strings.ToUpper(method),
		Template: template,
		Pattern:  re,
		Keys:     keys,
		Handler:  h,
	})
	return nil
}

// Handle is AddRoute that panics on an invalid route, like http.ServeMux.
func (rt *Router) Handle(method, template string, h http.Handler) *Router {
	if err := rt.AddRoute(method, template, h); err != nil {
		panic(err)
	}
	return rt
}

func (rt *Router) Get(template string, h http.HandlerFunc) *Router {
	return rt.Handle(http.MethodGet, template, h)
}

func (rt *Router) Post(template string, h http.HandlerFunc) *Router {
	return rt.Handle(http.MethodPost, template, h)
}

func (rt *Router) Put(template string, h http.HandlerFunc) *Router {
	return rt.Handle(http.MethodPut, template, h)
}

func (rt *Router) Delete(template string, h http.HandlerFunc) *Router {
	return rt.Handle(http.MethodDelete, template, h)
}

// Routes returns the registered routes in registration order.
func (rt *Router) Routes() []Route {
	out := make([]Route, 0, len(rt.routes))
	for _, r := range rt.routes {
		out = append(out, *r)
	}
	return out
}

// Methods lists the methods with at least one route, in the order they
// were first registered.
func (rt *Router) Methods() []string {
	var methods []string
	seen := map[string]bool{}
	for _, r := range rt.routes {
		if !seen[r.Method] {
			seen[r.Method] = true
			methods = append(methods, r.Method)
		}
	}
	return methods
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if rt.serveStatic(w, req) {
		return
	}

	method := req.Method
	for pass := 0; pass < 2; pass++ {
		for _, r := range rt.routes {
			if r.Method != method {
				continue
			}
			m := r.Pattern.FindStringSubmatch(req.URL.Path)
			if m == nil {
				continue
			}
			r.Handler.ServeHTTP(w, req.WithContext(withParams(req.Context(), r.Keys, m[1:])))
			return
		}
		// HEAD falls back to GET routes
		if method != http.MethodHead {
			break
		}
		method = http.MethodGet
	}

	if rt.Next != nil {
		rt.Next.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

func (rt *Router) serveStatic(w http.ResponseWriter, req *http.Request) bool {
	if rt.Static == "" || (req.Method != http.MethodGet && req.Method != http.MethodHead) {
		return false
	}
	name := filepath.Join(rt.Static, filepath.FromSlash(path.Clean("/"+req.URL.Path)))
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeFile(w, req, name)
	return true
}

type paramsKey struct{}

func withParams(ctx context.Context, keys, values []string) context.Context {
	if len(keys) == 0 {
		return ctx
	}
	params := make(map[string][]string, len(keys))
	for i, k := range keys {
		params[k] = append(params[k], values[i])
	}
	return context.WithValue(ctx, paramsKey{}, params)
}

// Param returns the first value captured for key by the matched route.
func Param(r *http.Request, key string) string {
	if vs := Params(r, key); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Params returns every value captured for key; a template with several
// wildcards captures several splats.
func Params(r *http.Request, key string) []string {
	params, _ := r.Context().Value(paramsKey{}).(map[string][]string)
	return params[key]
}
