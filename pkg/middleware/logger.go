package middleware

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger writes one access log line per request to Out (os.Stderr when
// nil) and passes the request on to Next.
type Logger struct {
	Out  io.Writer
	Next http.Handler
}

// NewLogger returns a Logger writing to out.
func NewLogger(out io.Writer, next http.Handler) *Logger {
	return &Logger{Out: out, Next: next}
}

func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w}

	if l.Next != nil {
		l.Next.ServeHTTP(sw, r)
	} else {
		http.NotFound(sw, r)
	}

	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	logger := zerolog.New(out).With().Timestamp().Logger()
	logger.Info().
		Str("method", r.Method).
		Str("host", r.Host).
		Str("path", r.URL.Path).
		Int("status", sw.Status()).
		Int("bytes", sw.written).
		Dur("duration", time.Since(start)).
		Msg("request")
}

// statusWriter remembers the status code and body size of a response.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
