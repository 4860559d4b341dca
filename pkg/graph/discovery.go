package graph

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unsafe"
)

// Field names conventionally holding nested handlers, matched case-insensitively.
var (
	collectionFields = []string{"handlers", "apps", "chain", "stack", "middlewares"}
	singleFields     = []string{"next", "handler", "app", "h", "inner", "wrapped"}
)

var (
	responseWriterType = reflect.TypeFor[http.ResponseWriter]()
	requestPtrType     = reflect.TypeFor[*http.Request]()
)

// Generic is the catch-all Wrapper. It guesses nested handlers from the
// handler's capabilities, conventional attribute names, and finally from
// every attribute that holds something handler shaped.
type Generic struct {
	Base
}

// NewGeneric wraps h for heuristic discovery.
func NewGeneric(h any) *Generic {
	return &Generic{Base{H: h}}
}

// Children never contains the wrapped handler itself.
func (g *Generic) Children() []any {
	h := g.H
	if h == nil {
		return nil
	}

	if c, ok := h.(Composite); ok {
		return withoutSelf(flatten(c.Children()), h)
	}
	if list, ok := conventionalList(h); ok {
		return withoutSelf(list, h)
	}
	if one, ok := conventionalSingle(h); ok {
		return []any{one}
	}
	return withoutSelf(scanAttributes(h), h)
}

// LooksLikeHandler reports whether v can serve a request and is not self.
func LooksLikeHandler(v, self any) bool {
	return isHandler(v) && !identical(v, self)
}

// LooksLikeList reports whether v is a non-empty slice or array of handlers.
func LooksLikeList(v any) bool {
	_, ok := listElements(v)
	return ok
}

// LooksLikeMap reports whether v is a non-empty map whose values are all handlers.
func LooksLikeMap(v any) bool {
	_, ok := mapEntries(v)
	return ok
}

func conventionalList(h any) ([]any, bool) {
	if v, ok := callAccessor(h, "Handlers"); ok {
		if elems, ok := listElements(v); ok {
			return elems, true
		}
	}
	for _, name := range collectionFields {
		if v, ok := fieldByName(h, name); ok {
			if elems, ok := listElements(v); ok {
				return elems, true
			}
		}
	}
	return nil, false
}

func conventionalSingle(h any) (any, bool) {
	if u, ok := h.(interface{ Unwrap() http.Handler }); ok {
		var next http.Handler
		safely(func() { next = u.Unwrap() })
		if LooksLikeHandler(next, h) {
			return next, true
		}
	}
	for _, name := range singleFields {
		if v, ok := fieldByName(h, name); ok && LooksLikeHandler(v, h) {
			return v, true
		}
	}
	return nil, false
}

// scanAttributes keeps every attribute value that is a handler, a list of
// handlers or a map of handlers, in attribute order.
func scanAttributes(h any) []any {
	var values []any
	if in, ok := h.(Introspectable); ok {
		var attrs []Attribute
		safely(func() { attrs = in.Attributes() })
		for _, a := range attrs {
			values = append(values, a.Value)
		}
	} else {
		values = fieldValues(h)
	}

	var out []any
	for _, v := range values {
		if LooksLikeHandler(v, h) {
			out = append(out, v)
			continue
		}
		if entries, ok := mapEntries(v); ok {
			out = append(out, entries...)
			continue
		}
		if elems, ok := listElements(v); ok {
			out = append(out, elems...)
		}
	}
	return out
}

func isHandler(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if isNilValue(rv) {
		return false
	}
	if _, ok := v.(http.Handler); ok {
		return true
	}
	return isHandlerFunc(rv.Type())
}

// isHandlerFunc matches func(http.ResponseWriter, *http.Request), named or not.
func isHandlerFunc(t reflect.Type) bool {
	return t.Kind() == reflect.Func &&
		t.NumIn() == 2 && t.NumOut() == 0 && !t.IsVariadic() &&
		t.In(0) == responseWriterType && t.In(1) == requestPtrType
}

func listElements(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if hs, ok := v.([]http.Handler); ok && len(hs) > 0 {
		out := make([]any, 0, len(hs))
		for _, e := range hs {
			if !isHandler(e) {
				return nil, false
			}
			out = append(out, e)
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Len() == 0 {
		return nil, false
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		e, ok := interfaceOf(rv.Index(i))
		if !ok || !isHandler(e) {
			return nil, false
		}
		out = append(out, e)
	}
	return out, true
}

// mapEntries expands a map of handlers into one Entry per key, sorted by label.
func mapEntries(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Len() == 0 {
		return nil, false
	}

	entries := make([]*Entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		val, ok := interfaceOf(iter.Value())
		if !ok || !isHandler(val) {
			return nil, false
		}
		key, _ := interfaceOf(iter.Key())
		entries = append(entries, NewEntry(entryLabel(key), val))
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Label < entries[j].Label })
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e
	}
	return out, true
}

// entryLabel prints a map key; an empty one is quoted so the line still
// shows a label.
func entryLabel(key any) string {
	label := fmt.Sprint(key)
	if label == "" {
		return strconv.Quote(label)
	}
	return label
}

func withoutSelf(children []any, self any) []any {
	out := children[:0:0]
	for _, c := range children {
		if identical(c, self) {
			continue
		}
		if e, ok := c.(*Entry); ok && identical(e.Child, self) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// identical is reference identity for pointer-like values and equality for
// comparable values. Funcs are never identical: their code pointers are
// shared between closures.
func identical(a, b any) (same bool) {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Func:
		return false
	}
	if !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// callAccessor calls a zero-argument, single-result method by name.
func callAccessor(h any, name string) (any, bool) {
	m := reflect.ValueOf(h).MethodByName(name)
	if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
		return nil, false
	}
	var out any
	var ok bool
	safely(func() {
		out, ok = interfaceOf(m.Call(nil)[0])
	})
	return out, ok
}

// structValue returns an addressable struct value for h, following pointers.
func structValue(h any) (reflect.Value, bool) {
	rv := reflect.ValueOf(h)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	if !rv.CanAddr() {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}
	return rv, true
}

// Field reads the field called name (case-insensitively) from the struct h
// is or points to, exported or not. Nil values count as absent.
func Field(h any, name string) (any, bool) {
	return fieldByName(h, name)
}

// Embedded finds the T that h is, points to, or embeds (at any depth, breadth
// first) and returns a pointer to it. When h is a struct passed by value the
// pointer refers to a copy.
func Embedded[T any](h any) (*T, bool) {
	target := reflect.TypeFor[T]()
	rv := reflect.ValueOf(h)
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Kind() != reflect.Pointer {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}

	queue := []reflect.Value{rv}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		switch {
		case v.Kind() == reflect.Pointer:
			if !v.IsNil() {
				queue = append(queue, v.Elem())
			}
		case v.Type() == target && v.CanAddr():
			return (*T)(unsafe.Pointer(v.UnsafeAddr())), true
		case v.Kind() == reflect.Struct:
			t := v.Type()
			for i := 0; i < t.NumField(); i++ {
				if t.Field(i).Anonymous {
					f := v.Field(i)
					if !f.CanInterface() {
						f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
					}
					queue = append(queue, f)
				}
			}
		}
	}
	return nil, false
}

func fieldByName(h any, name string) (any, bool) {
	sv, ok := structValue(h)
	if !ok {
		return nil, false
	}
	t := sv.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Name, name) {
			return readField(sv.Field(i))
		}
	}
	return nil, false
}

func fieldValues(h any) []any {
	sv, ok := structValue(h)
	if !ok {
		return nil
	}
	var out []any
	for i := 0; i < sv.NumField(); i++ {
		if v, ok := readField(sv.Field(i)); ok {
			out = append(out, v)
		}
	}
	return out
}

// readField reads a field of an addressable struct, exported or not.
func readField(f reflect.Value) (any, bool) {
	if !f.CanInterface() {
		f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	}
	return interfaceOf(f)
}

func interfaceOf(v reflect.Value) (any, bool) {
	if !v.IsValid() || isNilValue(v) {
		return nil, false
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func safely(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
