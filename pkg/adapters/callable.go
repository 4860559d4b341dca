package adapters

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/arthur-debert/httpgraph/pkg/graph"
)

// callableWrapper describes a func: where it is defined for handler funcs,
// which parameters it takes for anything else.
type callableWrapper struct {
	graph.Base
}

func newCallableWrapper(_ *graph.Registry, h any) graph.Wrapper {
	return &callableWrapper{graph.Base{H: h}}
}

func (w *callableWrapper) Options() []string {
	return DescribeFunc(w.H)
}

// DescribeFunc returns the symbol and "file:line" of a handler func, or the
// parenthesised parameter list of any other func. Nil funcs and non-funcs
// have no description.
func DescribeFunc(fn any) []string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil
	}
	t := v.Type()
	if !graph.LooksLikeHandler(fn, nil) {
		return []string{Parameters(t)}
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return []string{Parameters(t)}
	}
	file, line := f.FileLine(f.Entry())
	return []string{shortSymbol(f.Name()), filepath.Base(file) + ":" + strconv.Itoa(line)}
}

// Parameters renders the parameter list of a func type, e.g. "(string, ...int)".
func Parameters(t reflect.Type) string {
	params := make([]string, t.NumIn())
	for i := range params {
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			params[i] = "..." + in.Elem().String()
			continue
		}
		params[i] = in.String()
	}
	return "(" + strings.Join(params, ", ") + ")"
}

// shortSymbol drops the import path directories from a runtime symbol, so
// "github.com/x/app/api.health" becomes "api.health".
func shortSymbol(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
