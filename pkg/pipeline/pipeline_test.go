package pipeline

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/arthur-debert/httpgraph/pkg/adapters"
	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/graph"
	"github.com/arthur-debert/httpgraph/pkg/middleware"
	"github.com/arthur-debert/httpgraph/pkg/testutil"
)

func build(t *testing.T, s *Stage) *Pipeline {
	t.Helper()
	p, err := NewBuilder().Build(s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestDemoRenders(t *testing.T) {
	r, err := adapters.NewRegistry()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, graph.Run(r, build(t, Demo()).Root, &buf))

	assert.Equal(t, testutil.Lines(
		"*middleware.Logger(stderr)",
		" - *middleware.URLMap",
		"    |- http[s]://api.example.com/v1",
		"    |  - *http.timeoutHandler(5s)",
		"    |     - *router.Router",
		"    |        |- GET",
		"    |        |  |- /users/:id",
		"    |        |  |  - *pipeline.Text",
		"    |        |  |",
		"    |        |  - /files/*",
		"    |        |     - *http.fileHandler(/srv/files)",
		"    |        |",
		"    |        |- POST",
		"    |        |  - /users",
		"    |        |     - *pipeline.Text",
		"    |        |",
		"    |        - *pipeline.Text",
		"    |",
		"    - /",
		"       - *middleware.Cascade",
		"          |- *http.fileHandler(public)",
		"          |",
		"          - *http.redirectHandler(302, /index.html)",
	), buf.String())
}

func TestDemoServes(t *testing.T) {
	s := Demo()
	s.Out = "discard"
	p := build(t, s)

	rec := testutil.Serve(p, http.MethodPost, "http://api.example.com/v1/users")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "created", rec.Body.String())

	rec = testutil.Serve(p, http.MethodGet, "http://api.example.com/v1/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no such endpoint", rec.Body.String())

	rec = testutil.Serve(p, http.MethodGet, "http://www.example.com/missing")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/index.html", rec.Header().Get("Location"))
}

func TestDemoSource(t *testing.T) {
	assert.Contains(t, DemoSource(), `kind = "logger"`)
}

func TestLoadYAML(t *testing.T) {
	path := testutil.TempFile(t, "pipeline.yaml", `
pipeline:
  kind: strip
  prefix: /api
  next:
    kind: timeout
    timeout: 250ms
    next:
      kind: text
      code: 204
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "strip", s.Kind)
	assert.Equal(t, 250*time.Millisecond, s.Next.Timeout)
	assert.Equal(t, 204, s.Next.Next.Code)

	p := build(t, s)
	strip, ok := p.Root.(*Strip)
	require.True(t, ok)
	assert.Equal(t, "/api", strip.Prefix)

	rec := testutil.Serve(p, http.MethodGet, "/api/x")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoadTOML(t *testing.T) {
	path := testutil.TempFile(t, "pipeline.toml", `
[pipeline]
kind = "cascade"

[[pipeline.stages]]
kind = "text"
code = 404

[[pipeline.stages]]
kind = "text"
body = "second"
`)

	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.Stages, 2)

	rec := testutil.Serve(build(t, s), http.MethodGet, "/")
	assert.Equal(t, "second", rec.Body.String())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrPipelineLoad), "got %v", err)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(testutil.TempFile(t, "bad.toml", "[pipeline\nkind ="))
		assert.True(t, errors.IsErrorCode(err, errors.ErrPipelineLoad), "got %v", err)
	})

	t.Run("no pipeline section", func(t *testing.T) {
		_, err := Parse([]byte("[other]\nkind = \"text\"\n"), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrPipelineInvalid), "got %v", err)
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := Parse([]byte("[pipeline]\nkind = \"text\"\ncolour = \"red\"\n"), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrPipelineInvalid), "got %v", err)
	})
}

func TestBuildReportsEveryProblem(t *testing.T) {
	s := &Stage{
		Kind: "urlmap",
		Mounts: []Mount{
			{Path: "/a", Handler: Stage{Kind: "nope"}},
			{Path: "/b", Handler: Stage{Kind: "redirect", Code: 200}},
			{Path: "/c", Handler: Stage{Kind: "router", Routes: []Route{
				{Method: "GET", Path: "/:", Handler: Stage{Kind: "text"}},
			}}},
			{Path: "/d", Handler: Stage{}},
		},
	}

	p, err := NewBuilder().Build(s)
	assert.Nil(t, p)
	require.True(t, errors.IsErrorCode(err, errors.ErrPipelineInvalid), "got %v", err)

	errs := multierr.Errors(stderrors.Unwrap(err))
	require.Len(t, errs, 5)
	assert.Contains(t, errs[0].Error(), `pipeline.mounts[0].handler: unknown stage kind "nope"`)
	assert.Contains(t, errs[1].Error(), "pipeline.mounts[1].handler: redirect code 200 is not a 3xx status")
	assert.Contains(t, errs[2].Error(), "pipeline.mounts[1].handler: redirect needs a url")
	assert.Contains(t, errs[3].Error(), "pipeline.mounts[2].handler.routes[0]")
	assert.Contains(t, errs[4].Error(), "pipeline.mounts[3].handler: stage has no kind")
	assert.Equal(t, "pipeline.mounts[3].handler", errors.GetErrorDetails(errs[4])["stage"])
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name  string
		stage *Stage
		want  string
	}{
		{"nil", nil, "missing stage"},
		{"empty urlmap", &Stage{Kind: "urlmap"}, "needs at least one mount"},
		{"empty cascade", &Stage{Kind: "cascade"}, "needs at least one stage"},
		{"timeout without duration", &Stage{Kind: "timeout", Next: &Stage{Kind: "text"}}, "timeout must be positive"},
		{"timeout without next", &Stage{Kind: "timeout", Timeout: time.Second}, "missing stage"},
		{"files without dir", &Stage{Kind: "files"}, "files needs a dir"},
		{"bad text status", &Stage{Kind: "text", Code: 999}, "unknown status code 999"},
		{"strip without prefix", &Stage{Kind: "strip", Next: &Stage{Kind: "text"}}, "strip needs a prefix"},
		{"unwritable log", &Stage{Kind: "logger", Out: filepath.Join(t.TempDir(), "no", "such", "dir.log")}, "cannot open log file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Build(tt.stage)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoggerFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "access.log")
	p := build(t, &Stage{Kind: "logger", Out: logPath, Next: &Stage{Kind: "text", Body: "ok"}})

	l, ok := p.Root.(*middleware.Logger)
	require.True(t, ok)
	assert.Equal(t, logPath, adapters.Destination(l.Out))

	testutil.Get(p, "/")
	require.NoError(t, p.Close())

	assert.Contains(t, testutil.ReadFile(t, logPath), `"path":"/"`)
}

func TestCustomKind(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Register("hello", func(_ *Builder, s *Stage, _ string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "hello "+s.Body) })
	}))
	assert.True(t, errors.IsErrorCode(b.Register("text", nil), errors.ErrAlreadyExists))
	assert.Contains(t, b.Kinds(), "hello")
	assert.Len(t, b.Kinds(), 10)

	p, err := b.Build(&Stage{Kind: "hello", Body: "world"})
	require.NoError(t, err)

	rec := testutil.Serve(p, http.MethodGet, "/")
	assert.Equal(t, "hello world", rec.Body.String())
}
