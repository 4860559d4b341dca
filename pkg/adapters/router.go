package adapters

import (
	"os"
	"reflect"
	"strconv"

	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/pattern"
	"github.com/arthur-debert/httpgraph/pkg/router"
)

var routerPtrType = reflect.TypeFor[*router.Router]()

// routerWrapper groups a router's routes by method, one entry per route
// template, followed by the router's Next handler.
type routerWrapper struct {
	graph.Base
	rt *router.Router
}

func newRouterWrapper(_ *graph.Registry, h any) graph.Wrapper {
	rt, ok := graph.Embedded[router.Router](h)
	if !ok {
		return nil
	}
	return &routerWrapper{Base: graph.Base{H: h}, rt: rt}
}

func (w *routerWrapper) Name() string {
	name := graph.DefaultName(w)
	if reflect.TypeOf(w.H) != routerPtrType {
		name += " < router.Router"
	}
	return name
}

func (w *routerWrapper) Options() []string {
	dir := w.rt.Static
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil
	}
	return []string{"public: " + strconv.Quote(dir)}
}

func (w *routerWrapper) Children() []any {
	byMethod := map[string][]any{}
	for _, r := range w.rt.Routes() {
		byMethod[r.Method] = append(byMethod[r.Method],
			graph.NewEntry(pattern.Decompile(r.Pattern, r.Keys), r.Handler))
	}

	var out []any
	for _, m := range w.rt.Methods() {
		out = append(out, graph.NewEntry(m, byMethod[m]))
	}
	if w.rt.Next != nil {
		out = append(out, w.rt.Next)
	}
	return out
}
