package graph

import (
	"strings"
)

// Wrapper adapts one handler for introspection.
type Wrapper interface {
	// Handler is the wrapped value.
	Handler() any
	// Options are short descriptions appended to the name; nil when absent.
	Options() []string
	// Children lists nested handlers in a stable order. It is recomputed
	// on every call.
	Children() []any
}

// Namer is implemented by wrappers that pick their own display name.
type Namer interface {
	Name() string
}

// Composite is implemented by handlers that list their nested handlers
// themselves. Generic discovery uses it instead of any heuristic.
type Composite interface {
	Children() []any
}

// Attribute is one named value exposed by an Introspectable handler.
type Attribute struct {
	Name  string
	Value any
}

// Introspectable lets a handler opt in to attribute based discovery without
// exposing its struct fields to reflection.
type Introspectable interface {
	Attributes() []Attribute
}

// Base is the embeddable default Wrapper: no options, no children.
type Base struct {
	H any
}

func (b Base) Handler() any      { return b.H }
func (b Base) Options() []string { return nil }
func (b Base) Children() []any   { return nil }

// Name is the display name of w.
func Name(w Wrapper) string {
	if n, ok := w.(Namer); ok {
		return n.Name()
	}
	return DefaultName(w)
}

// DefaultName is the handler's type followed by the non-empty options,
// comma separated in parentheses.
func DefaultName(w Wrapper) string {
	name := DisplayType(w.Handler())

	var opts []string
	for _, o := range w.Options() {
		if o != "" {
			opts = append(opts, o)
		}
	}
	if len(opts) == 0 {
		return name
	}
	return name + "(" + strings.Join(opts, ", ") + ")"
}

// Next returns nil without children, the only child with one, and the
// whole []any otherwise.
func Next(w Wrapper) any {
	children := w.Children()
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	default:
		return children
	}
}

// Entry is a labelled node, used for map keys, mounts and routes.
type Entry struct {
	Label string
	Child any
}

// NewEntry returns a labelled node leading to child. A []any child is
// expanded into several children.
func NewEntry(label string, child any) *Entry {
	return &Entry{Label: label, Child: child}
}

func (e *Entry) Handler() any      { return e.Child }
func (e *Entry) Options() []string { return nil }
func (e *Entry) Name() string      { return e.Label }

func (e *Entry) Children() []any {
	return flatten(e.Child)
}

// flatten turns nil into no children, []any into its elements (recursively)
// and anything else into a single child.
func flatten(v any) []any {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		var out []any
		for _, e := range x {
			out = append(out, flatten(e)...)
		}
		return out
	default:
		return []any{v}
	}
}
