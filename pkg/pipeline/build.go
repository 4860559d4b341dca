package pipeline

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/multierr"

	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/logging"
	"github.com/arthur-debert/httpgraph/pkg/middleware"
	"github.com/arthur-debert/httpgraph/pkg/registry"
	"github.com/arthur-debert/httpgraph/pkg/router"
)

// Kind builds the handler for one stage. at locates the stage in the
// description for error messages; failures are reported through b.Fail.
type Kind func(b *Builder, s *Stage, at string) http.Handler

// Pipeline is a built description.
type Pipeline struct {
	Root    http.Handler
	closers []io.Closer
}

func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.Root.ServeHTTP(w, r)
}

// Close releases files opened for logger stages.
func (p *Pipeline) Close() error {
	var err error
	for _, c := range p.closers {
		err = multierr.Append(err, c.Close())
	}
	p.closers = nil
	return err
}

// Builder turns stages into handlers.
type Builder struct {
	kinds   registry.Registry[Kind]
	err     error
	closers []io.Closer
}

// NewBuilder returns a builder knowing the built-in kinds.
func NewBuilder() *Builder {
	b := &Builder{kinds: registry.New[Kind]("stage kind")}
	for name, k := range map[string]Kind{
		"logger":   buildLogger,
		"urlmap":   buildURLMap,
		"cascade":  buildCascade,
		"router":   buildRouter,
		"timeout":  buildTimeout,
		"redirect": buildRedirect,
		"files":    buildFiles,
		"text":     buildText,
		"strip":    buildStrip,
	} {
		registry.MustRegister(b.kinds, name, k)
	}
	return b
}

// Register adds a stage kind. Built-in kinds cannot be replaced.
func (b *Builder) Register(name string, k Kind) error {
	return b.kinds.Register(name, k)
}

// Kinds lists the known kinds, sorted.
func (b *Builder) Kinds() []string {
	return b.kinds.List()
}

// Build builds s. Every problem in the description is reported, not just
// the first; the result is then a PIPELINE_INVALID error wrapping all of
// them.
func (b *Builder) Build(s *Stage) (*Pipeline, error) {
	b.err, b.closers = nil, nil

	root := b.Stage(s, "pipeline")
	if b.err != nil {
		for _, c := range b.closers {
			_ = c.Close()
		}
		return nil, errors.Wrapf(b.err, errors.ErrPipelineInvalid,
			"pipeline has %d error(s)", len(multierr.Errors(b.err)))
	}

	logger := logging.GetLogger("pipeline")
	logger.Debug().Str("root", s.Kind).Msg("Built pipeline")
	return &Pipeline{Root: root, closers: b.closers}, nil
}

// Stage builds one nested stage; kinds call it for their children.
func (b *Builder) Stage(s *Stage, at string) http.Handler {
	if s == nil {
		b.Fail(at, "missing stage")
		return nil
	}
	if s.Kind == "" {
		b.Fail(at, "stage has no kind")
		return nil
	}
	k, ok := b.kinds.Lookup(s.Kind)
	if !ok {
		b.Fail(at, "unknown stage kind %q", s.Kind)
		return nil
	}
	return k(b, s, at)
}

// Fail records a problem with the stage at at.
func (b *Builder) Fail(at, format string, args ...any) {
	b.err = multierr.Append(b.err, errors.Newf(errors.ErrPipelineInvalid, "%s: %s", at, fmt.Sprintf(format, args...)).
		WithDetail("stage", at))
}

func (b *Builder) addCloser(c io.Closer) {
	b.closers = append(b.closers, c)
}

func buildLogger(b *Builder, s *Stage, at string) http.Handler {
	var out io.Writer
	switch s.Out {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard":
		out = io.Discard
	default:
		f, err := os.OpenFile(s.Out, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			b.Fail(at, "cannot open log file: %v", err)
			return nil
		}
		b.addCloser(f)
		out = f
	}
	return middleware.NewLogger(out, b.optional(s.Next, at+".next"))
}

func buildURLMap(b *Builder, s *Stage, at string) http.Handler {
	if len(s.Mounts) == 0 {
		b.Fail(at, "urlmap needs at least one mount")
	}
	m := middleware.NewURLMap()
	for i := range s.Mounts {
		mt := &s.Mounts[i]
		m.Mount(mt.Host, mt.Path, b.Stage(&mt.Handler, at+".mounts["+strconv.Itoa(i)+"].handler"))
	}
	return m
}

func buildCascade(b *Builder, s *Stage, at string) http.Handler {
	if len(s.Stages) == 0 {
		b.Fail(at, "cascade needs at least one stage")
	}
	c := middleware.NewCascade()
	for i := range s.Stages {
		c.Add(b.Stage(&s.Stages[i], at+".stages["+strconv.Itoa(i)+"]"))
	}
	return c
}

func buildRouter(b *Builder, s *Stage, at string) http.Handler {
	rt := &router.Router{Static: s.Dir, Next: b.optional(s.Next, at+".next")}
	for i := range s.Routes {
		r := &s.Routes[i]
		where := at + ".routes[" + strconv.Itoa(i) + "]"
		h := b.Stage(&r.Handler, where+".handler")
		if h == nil {
			continue
		}
		if err := rt.AddRoute(r.Method, r.Path, h); err != nil {
			b.Fail(where, "%v", err)
		}
	}
	return rt
}

func buildTimeout(b *Builder, s *Stage, at string) http.Handler {
	if s.Timeout <= 0 {
		b.Fail(at, "timeout must be positive")
	}
	next := b.Stage(s.Next, at+".next")
	if next == nil {
		return nil
	}
	return http.TimeoutHandler(next, s.Timeout, s.Body)
}

func buildRedirect(b *Builder, s *Stage, at string) http.Handler {
	code := s.Code
	if code == 0 {
		code = http.StatusFound
	}
	if code < 300 || code > 399 {
		b.Fail(at, "redirect code %d is not a 3xx status", code)
	}
	if s.URL == "" {
		b.Fail(at, "redirect needs a url")
	}
	return http.RedirectHandler(s.URL, code)
}

func buildFiles(b *Builder, s *Stage, at string) http.Handler {
	if s.Dir == "" {
		b.Fail(at, "files needs a dir")
	}
	return http.FileServer(http.Dir(s.Dir))
}

func buildText(b *Builder, s *Stage, at string) http.Handler {
	code := s.Code
	if code == 0 {
		code = http.StatusOK
	}
	if http.StatusText(code) == "" {
		b.Fail(at, "unknown status code %d", code)
	}
	return &Text{Code: code, Body: s.Body}
}

func buildStrip(b *Builder, s *Stage, at string) http.Handler {
	if s.Prefix == "" {
		b.Fail(at, "strip needs a prefix")
	}
	next := b.Stage(s.Next, at+".next")
	if next == nil {
		return nil
	}
	return &Strip{Prefix: s.Prefix, Next: next}
}

// optional builds s when present.
func (b *Builder) optional(s *Stage, at string) http.Handler {
	if s == nil {
		return nil
	}
	return b.Stage(s, at)
}

// Text answers every request with a fixed status and body.
type Text struct {
	Code int
	Body string
}

func (t *Text) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(t.Code)
	_, _ = io.WriteString(w, t.Body)
}

// Strip removes Prefix from the request path before calling Next, like
// http.StripPrefix, but keeps Next visible to introspection.
type Strip struct {
	Prefix string
	Next   http.Handler
}

func (s *Strip) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.StripPrefix(s.Prefix, s.Next).ServeHTTP(w, r)
}

