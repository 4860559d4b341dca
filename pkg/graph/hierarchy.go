package graph

import (
	"reflect"
)

// rootType is the universal root every hierarchy terminates at.
var rootType = reflect.TypeFor[any]()

// Hierarchy returns the dynamic type of v followed by its ancestor types,
// most specific first: the pointer element type, then embedded struct field
// types breadth first in declaration order. The last element is always the
// empty interface type. A nil value yields only the root.
func Hierarchy(v any) []reflect.Type {
	if v == nil {
		return []reflect.Type{rootType}
	}
	return typeHierarchy(reflect.TypeOf(v))
}

// TypeHierarchy is Hierarchy for a type rather than a value.
func TypeHierarchy(t reflect.Type) []reflect.Type {
	if t == nil {
		return []reflect.Type{rootType}
	}
	return typeHierarchy(t)
}

func typeHierarchy(t reflect.Type) []reflect.Type {
	seen := map[reflect.Type]bool{rootType: true}
	var out []reflect.Type

	queue := []reflect.Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		out = append(out, cur)

		if cur.Kind() == reflect.Pointer {
			queue = append(queue, cur.Elem())
			continue
		}
		if cur.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < cur.NumField(); i++ {
			if f := cur.Field(i); f.Anonymous {
				queue = append(queue, f.Type)
			}
		}
	}

	return append(out, rootType)
}

// TypeName is the registry lookup name of t: "pkgpath.Name" for named types
// (net/http.timeoutHandler), the type's string form otherwise.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// DisplayType is the short type name shown in rendered trees, e.g. *router.Router.
func DisplayType(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
