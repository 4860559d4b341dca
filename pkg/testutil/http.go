package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
)

// Text is a handler answering 200 with s.
func Text(s string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, s) }
}

// EchoPath answers with the request path it sees.
func EchoPath(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, r.URL.Path) }

// Serve records h's response to a method request for target.
func Serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

// Get records h's response to a GET for target.
func Get(h http.Handler, target string) *httptest.ResponseRecorder {
	return Serve(h, http.MethodGet, target)
}
