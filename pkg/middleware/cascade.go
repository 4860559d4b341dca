package middleware

import (
	"bytes"
	"net/http"
)

// Cascade tries its handlers in order and sends the first response that is
// not a 404. The last handler's response is sent whatever its status.
type Cascade struct {
	handlers []http.Handler
}

// NewCascade returns a Cascade over handlers.
func NewCascade(handlers ...http.Handler) *Cascade {
	return &Cascade{handlers: handlers}
}

// Add appends h.
func (c *Cascade) Add(h http.Handler) *Cascade {
	c.handlers = append(c.handlers, h)
	return c
}

// Handlers returns the handlers in the order they are tried.
func (c *Cascade) Handlers() []http.Handler {
	return append([]http.Handler(nil), c.handlers...)
}

func (c *Cascade) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for i, h := range c.handlers {
		if i == len(c.handlers)-1 {
			h.ServeHTTP(w, r)
			return
		}
		buf := newBufferedResponse()
		h.ServeHTTP(buf, r)
		if buf.status == http.StatusNotFound {
			continue
		}
		buf.sendTo(w)
		return
	}
	http.NotFound(w, r)
}

// bufferedResponse holds a response until the cascade decides to send it.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: http.Header{}}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) sendTo(w http.ResponseWriter) {
	for k, vs := range b.header {
		w.Header()[k] = vs
	}
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(b.body.Bytes())
}
