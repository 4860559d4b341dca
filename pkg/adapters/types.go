package adapters

import (
	"net/http"
	"reflect"

	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/router"
)

// instantiable are the types whose zero value is a usable handler, so a
// type passed in place of a handler can be shown as a fresh instance.
var instantiable = []reflect.Type{
	reflect.TypeFor[router.Router](),
	reflect.TypeFor[http.ServeMux](),
}

// newTypeWrapper handles reflect.Type values. Types built on an
// instantiable type are instantiated and resolved; other types are shown
// as they are.
func newTypeWrapper(r *graph.Registry, h any) graph.Wrapper {
	t, ok := h.(reflect.Type)
	if !ok || t == nil {
		return nil
	}
	if !Instantiable(t) {
		return graph.NewGeneric(h)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return r.Resolve(reflect.New(t).Interface())
}

// Instantiable reports whether t, or a type it points to or embeds, is one
// of the types safe to build from a zero value.
func Instantiable(t reflect.Type) bool {
	for _, a := range graph.TypeHierarchy(t) {
		for _, ok := range instantiable {
			if a == ok {
				return true
			}
		}
	}
	return false
}
