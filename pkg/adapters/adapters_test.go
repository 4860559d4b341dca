package adapters

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/middleware"
	"github.com/arthur-debert/httpgraph/pkg/router"
	"github.com/arthur-debert/httpgraph/pkg/testutil"
)

type hello struct{}

func (hello) ServeHTTP(http.ResponseWriter, *http.Request) {}

type app struct {
	router.Router
}

func health(http.ResponseWriter, *http.Request) {}

func newRegistry(t *testing.T) *graph.Registry {
	t.Helper()
	r, err := NewRegistry()
	require.NoError(t, err)
	return r
}

func render(t *testing.T, r *graph.Registry, h any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, graph.Run(r, h, &buf))
	return buf.String()
}

func TestRegisterIsSealed(t *testing.T) {
	r := newRegistry(t)

	assert.True(t, r.Sealed())
	assert.Contains(t, r.Keys(), "net/http.timeoutHandler")
	assert.True(t, errors.IsErrorCode(Register(r), errors.ErrRegistrySealed))
}

func TestRegisterStrictTwice(t *testing.T) {
	r := graph.NewRegistry(graph.WithStrictRegistration())
	require.NoError(t, Register(r))
	assert.True(t, errors.IsErrorCode(Register(r), errors.ErrAlreadyExists))
}

func TestNamedMapping(t *testing.T) {
	r := newRegistry(t)
	m := middleware.NewURLMap(
		middleware.Mount{Host: "example.com", Path: "/a", Handler: router.New(nil).Handle("GET", "/users/:id", hello{})},
		middleware.Mount{Path: "/b", Handler: hello{}},
	)

	assert.Equal(t, testutil.Lines(
		"*middleware.URLMap",
		" |- http[s]://example.com/a",
		" |  - *router.Router",
		" |     - GET",
		" |        - /users/:id",
		" |           - adapters.hello",
		" |",
		" - /b",
		"    - adapters.hello",
	), render(t, r, m))
}

func TestMountLabel(t *testing.T) {
	assert.Equal(t, "http[s]://example.com/a", MountLabel("example.com", "/a"))
	assert.Equal(t, "http[s]://example.com/a", MountLabel("example.com", "a"))
	assert.Equal(t, "/b", MountLabel("", "/b"))
	assert.Equal(t, "/", MountLabel("", ""))
}

func TestLoggerDestination(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "access.log"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	tests := []struct {
		out  io.Writer
		want string
	}{
		{nil, "stderr"},
		{os.Stderr, "stderr"},
		{os.Stdout, "stdout"},
		{os.Stdin, "stdin"},
		{f, f.Name()},
		{&bytes.Buffer{}, "*bytes.Buffer"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Destination(tt.out))
		})
	}
}

func TestLoggerWrapper(t *testing.T) {
	r := newRegistry(t)

	assert.Equal(t, testutil.Lines(
		"*middleware.Logger(stdout)",
		" - adapters.hello",
	), render(t, r, middleware.NewLogger(os.Stdout, hello{})))
}

func TestRouterWrapper(t *testing.T) {
	r := newRegistry(t)
	rt := router.New(hello{}).
		Handle("GET", "/", hello{}).
		Handle("POST", "/items", hello{}).
		Handle("GET", "/files/*", hello{})

	assert.Equal(t, testutil.Lines(
		"*router.Router",
		" |- GET",
		" |  |- /",
		" |  |  - adapters.hello",
		" |  |",
		" |  - /files/*",
		" |     - adapters.hello",
		" |",
		" |- POST",
		" |  - /items",
		" |     - adapters.hello",
		" |",
		" - adapters.hello",
	), render(t, r, rt))
}

func TestRouterWrapperOptions(t *testing.T) {
	r := newRegistry(t)
	dir := t.TempDir()

	assert.Equal(t, `*router.Router(public: "`+dir+`")`, graph.Name(r.Resolve(&router.Router{Static: dir})))
	assert.Equal(t, "*router.Router", graph.Name(r.Resolve(&router.Router{Static: filepath.Join(dir, "missing")})))
}

func TestRouterWrapperEmbedded(t *testing.T) {
	r := newRegistry(t)
	a := &app{}
	a.Handle("GET", "/", hello{})

	assert.Equal(t, testutil.Lines(
		"*adapters.app < router.Router",
		" - GET",
		"    - /",
		"       - adapters.hello",
	), render(t, r, a))
}

func TestTypeInstantiation(t *testing.T) {
	r := newRegistry(t)

	assert.Equal(t, "*router.Router", graph.Name(r.Resolve(reflect.TypeFor[router.Router]())))
	assert.Equal(t, "*router.Router", graph.Name(r.Resolve(reflect.TypeFor[*router.Router]())))
	assert.Equal(t, "*adapters.app < router.Router", graph.Name(r.Resolve(reflect.TypeFor[app]())))
	assert.Equal(t, "*http.ServeMux", graph.Name(r.Resolve(reflect.TypeFor[http.ServeMux]())))

	w := r.Resolve(reflect.TypeFor[hello]())
	assert.IsType(t, &graph.Generic{}, w)
	assert.Empty(t, w.Children())

	assert.True(t, Instantiable(reflect.TypeFor[*app]()))
	assert.False(t, Instantiable(reflect.TypeFor[middleware.URLMap]()))
}

func TestCallable(t *testing.T) {
	r := newRegistry(t)

	name := graph.Name(r.Resolve(http.HandlerFunc(health)))
	assert.Regexp(t, `^http\.HandlerFunc\(adapters\.health, adapters_test\.go:\d+\)$`, name)

	name = graph.Name(r.Resolve(health))
	assert.Regexp(t, `^func\(http\.ResponseWriter, \*http\.Request\)\(adapters\.health, adapters_test\.go:\d+\)$`, name)

	assert.Equal(t, "http.HandlerFunc", graph.Name(r.Resolve(http.HandlerFunc(nil))))
}

func TestDescribeFunc(t *testing.T) {
	assert.Equal(t, []string{"(string, ...int)"}, DescribeFunc(func(string, ...int) {}))
	assert.Equal(t, []string{"()"}, DescribeFunc(func() {}))
	assert.Nil(t, DescribeFunc(42))
	assert.Nil(t, DescribeFunc((func())(nil)))

	opts := DescribeFunc(health)
	require.Len(t, opts, 2)
	assert.Equal(t, "adapters.health", opts[0])
}

func TestRegisterCallable(t *testing.T) {
	r := graph.NewRegistry()
	require.NoError(t, RegisterCallable(r, reflect.TypeFor[func(string) error]()))

	w := r.Resolve(func(string) error { return nil })
	assert.Equal(t, []string{"(string)"}, w.Options())
}

func TestStdlibHandlers(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name string
		h    http.Handler
		want string
	}{
		{"timeout", http.TimeoutHandler(hello{}, 2*time.Second, "late"), testutil.Lines(
			"*http.timeoutHandler(2s)",
			" - adapters.hello",
		)},
		{"files", http.FileServer(http.Dir("/srv/www")), testutil.Lines(
			"*http.fileHandler(/srv/www)",
		)},
		{"redirect", http.RedirectHandler("/new", http.StatusMovedPermanently), testutil.Lines(
			"*http.redirectHandler(301, /new)",
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, r, tt.h))
		})
	}
}

func TestComposedPipeline(t *testing.T) {
	r := newRegistry(t)
	api := router.New(nil).Handle("GET", "/users/:id", hello{})
	root := middleware.NewLogger(os.Stderr, middleware.NewCascade(
		http.StripPrefix("/v1", hello{}),
		api,
		middleware.NewURLMap(middleware.Mount{Path: "/static", Handler: http.FileServer(http.Dir("public"))}),
	))

	out := render(t, r, root)
	assert.True(t, strings.HasPrefix(out, "*middleware.Logger(stderr)\n - *middleware.Cascade\n"), out)
	assert.Contains(t, out, "http.HandlerFunc(http.StripPrefix.func1, server.go:")
	assert.Contains(t, out, "*router.Router")
	assert.Contains(t, out, "- /users/:id")
	assert.Contains(t, out, "- /static")
	assert.Contains(t, out, "*http.fileHandler(public)")
}
