package adapters

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/arthur-debert/httpgraph/pkg/graph"
)

// fieldWrapper is a Generic wrapper whose options are computed from the
// handler's fields; used for net/http types that cannot be named in code.
type fieldWrapper struct {
	*graph.Generic
	options func(h any) []string
}

func (w *fieldWrapper) Options() []string { return w.options(w.H) }

func newTimeoutWrapper(_ *graph.Registry, h any) graph.Wrapper {
	return &fieldWrapper{Generic: graph.NewGeneric(h), options: func(h any) []string {
		if dt, ok := graph.Field(h, "dt"); ok {
			if d, ok := dt.(time.Duration); ok {
				return []string{d.String()}
			}
		}
		return nil
	}}
}

func newFileServerWrapper(_ *graph.Registry, h any) graph.Wrapper {
	return &fieldWrapper{Generic: graph.NewGeneric(h), options: func(h any) []string {
		root, ok := graph.Field(h, "root")
		if !ok {
			return nil
		}
		if dir, ok := root.(http.Dir); ok {
			return []string{string(dir)}
		}
		return []string{fmt.Sprintf("%T", root)}
	}}
}

func newRedirectWrapper(_ *graph.Registry, h any) graph.Wrapper {
	return &fieldWrapper{Generic: graph.NewGeneric(h), options: func(h any) []string {
		var opts []string
		if code, ok := graph.Field(h, "code"); ok {
			if c, ok := code.(int); ok {
				opts = append(opts, strconv.Itoa(c))
			}
		}
		if url, ok := graph.Field(h, "url"); ok {
			if u, ok := url.(string); ok {
				opts = append(opts, u)
			}
		}
		return opts
	}}
}
