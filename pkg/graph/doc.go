// Package graph renders the composition of an http.Handler pipeline as a
// text tree.
//
// A Registry maps handler types to wrapper factories. Resolving a handler
// walks its type hierarchy (the type itself, the pointer element, then
// embedded struct types) and falls back to the Generic wrapper bound to the
// empty interface, so every value resolves to some Wrapper. Each Wrapper
// names its handler, optionally describes it, and lists the nested handlers
// it can see; Render prints the result:
//
//	*middleware.Logger(stderr)
//	 - *middleware.URLMap
//	    |- http[s]://example.com/a
//	    |  - *router.Router
//	    |
//	    - /b
//	       - http.HandlerFunc(main.health, main.go:31)
//
// The registry is built once at startup, usually via adapters.Register, and
// sealed before it is shared; Resolve and Render never mutate it.
package graph
