package graph

import (
	"net/http"
)

// leaf is a handler with no nested handlers.
type leaf struct{ name string }

func (l *leaf) ServeHTTP(http.ResponseWriter, *http.Request) {}

// leafWrapper shows the leaf's name as an option.
type leafWrapper struct{ Base }

func (w leafWrapper) Options() []string { return []string{w.H.(*leaf).name} }

func leafFactory(_ *Registry, h any) Wrapper { return leafWrapper{Base{H: h}} }

// nextMW wraps one handler in a conventionally named field.
type nextMW struct{ next http.Handler }

func (m *nextMW) ServeHTTP(w http.ResponseWriter, r *http.Request) { m.next.ServeHTTP(w, r) }

// chainMW holds a conventionally named list.
type chainMW struct{ handlers []http.Handler }

func (c *chainMW) ServeHTTP(http.ResponseWriter, *http.Request) {}

// unwrapMW exposes its inner handler through Unwrap only.
type unwrapMW struct{ hidden http.Handler }

func (u *unwrapMW) ServeHTTP(http.ResponseWriter, *http.Request) {}
func (u *unwrapMW) Unwrap() http.Handler                          { return u.hidden }

// lister exposes its list through a Handlers accessor.
type lister struct{ hs []http.Handler }

func (l *lister) ServeHTTP(http.ResponseWriter, *http.Request) {}
func (l *lister) Handlers() []http.Handler                     { return l.hs }

// composite lists children explicitly.
type composite struct {
	kids []any
	next http.Handler
}

func (c *composite) ServeHTTP(http.ResponseWriter, *http.Request) {}
func (c *composite) Children() []any                              { return c.kids }

// opaque has no conventional names; everything comes from the field scan.
type opaque struct {
	count   int
	primary http.Handler
	label   string
	fn      http.HandlerFunc
	routes  map[string]http.Handler
	pool    []http.Handler
	mixed   []any
	absent  http.Handler
}

func (o *opaque) ServeHTTP(http.ResponseWriter, *http.Request) {}

// selfRef stores a reference to itself.
type selfRef struct {
	next  http.Handler
	other http.Handler
	loop  *selfRef
}

func (s *selfRef) ServeHTTP(http.ResponseWriter, *http.Request) {}

// introspectable opts in to attribute discovery.
type introspectable struct{ attrs []Attribute }

func (i *introspectable) ServeHTTP(http.ResponseWriter, *http.Request) {}
func (i *introspectable) Attributes() []Attribute                      { return i.attrs }

// base and derived model a handler type extended through embedding.
type base struct{ next http.Handler }

func (b *base) ServeHTTP(http.ResponseWriter, *http.Request) {}

type derived struct {
	*base
	extra string
}

type deeper struct {
	derived
}

// marker is a wrapper type used to check which factory produced a wrapper.
type marker struct {
	Base
	tag string
}

func markerFactory(tag string) Factory {
	return func(_ *Registry, h any) Wrapper { return &marker{Base: Base{H: h}, tag: tag} }
}

func plainFunc(http.ResponseWriter, *http.Request) {}
