// Package adapters registers wrappers for the composition handlers this
// module ships and for the net/http handlers whose structure is worth
// showing.
package adapters

import (
	"net/http"
	"reflect"

	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/logging"
	"github.com/arthur-debert/httpgraph/pkg/middleware"
	"github.com/arthur-debert/httpgraph/pkg/router"
)

// Register installs every adapter on r.
func Register(r *graph.Registry) error {
	logger := logging.GetLogger("adapters")

	type binding struct {
		key  reflect.Type
		name string
		f    graph.Factory
	}
	bindings := []binding{
		{key: reflect.TypeFor[middleware.Logger](), f: newLoggerWrapper},
		{key: reflect.TypeFor[middleware.URLMap](), f: newURLMapWrapper},
		{key: reflect.TypeFor[router.Router](), f: newRouterWrapper},
		{key: reflect.TypeFor[http.HandlerFunc](), f: newCallableWrapper},
		{key: reflect.TypeFor[func(http.ResponseWriter, *http.Request)](), f: newCallableWrapper},
		{key: reflect.TypeOf(reflect.TypeFor[int]()), f: newTypeWrapper},
		{name: "net/http.timeoutHandler", f: newTimeoutWrapper},
		{name: "net/http.fileHandler", f: newFileServerWrapper},
		{name: "net/http.redirectHandler", f: newRedirectWrapper},
	}

	for _, b := range bindings {
		var err error
		if b.key != nil {
			err = r.Register(b.key, b.f)
		} else {
			err = r.RegisterName(b.name, b.f)
		}
		if err != nil {
			return err
		}
	}

	logger.Debug().Int("count", len(bindings)).Msg("Registered adapters")
	return nil
}

// NewRegistry returns a sealed registry with every adapter installed.
func NewRegistry(opts ...graph.RegistryOption) (*graph.Registry, error) {
	r := graph.NewRegistry(opts...)
	if err := Register(r); err != nil {
		return nil, err
	}
	r.Seal()
	return r, nil
}

// RegisterCallable makes values of the func type t render with their
// symbol and location, or with their parameter list when t is not a
// handler func.
func RegisterCallable(r *graph.Registry, t reflect.Type) error {
	return r.Register(t, newCallableWrapper)
}
