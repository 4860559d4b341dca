package adapters

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/middleware"
)

// loggerWrapper shows where a middleware.Logger writes to.
type loggerWrapper struct {
	*graph.Generic
	out io.Writer
}

func newLoggerWrapper(_ *graph.Registry, h any) graph.Wrapper {
	l, ok := graph.Embedded[middleware.Logger](h)
	if !ok {
		return nil
	}
	return &loggerWrapper{Generic: graph.NewGeneric(h), out: l.Out}
}

func (w *loggerWrapper) Options() []string {
	return []string{Destination(w.out)}
}

// Destination names a log destination: one of the standard streams, the
// path of any other file, or the writer's type.
func Destination(out io.Writer) string {
	switch out {
	case nil, os.Stderr:
		return "stderr"
	case os.Stdout:
		return "stdout"
	case os.Stdin:
		return "stdin"
	}
	if f, ok := out.(*os.File); ok && f != nil {
		return f.Name()
	}
	return fmt.Sprintf("%T", out)
}
