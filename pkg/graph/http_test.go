package graph

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerServesTree(t *testing.T) {
	r := testRegistry(t)
	root := &nextMW{next: &leaf{name: "a"}}

	rec := httptest.NewRecorder()
	Handler(r, root).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/graph", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*graph.nextMW\n - *graph.leaf(a)\n", rec.Body.String())
}

func TestHandlerRejectsWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(testRegistry(t), &leaf{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestSnapshot(t *testing.T) {
	r := testRegistry(t)
	root := &opaque{
		primary: &leaf{name: "p"},
		routes:  map[string]http.Handler{"/a": &nextMW{next: &leaf{name: "n"}}},
	}

	n := Snapshot(r, root)

	assert.Equal(t, "*graph.opaque", n.Name)
	assert.Equal(t, "*graph.opaque", n.Type)
	assert.Equal(t, 5, n.Count())
	if assert.Len(t, n.Children, 2) {
		assert.Equal(t, "*graph.leaf(p)", n.Children[0].Name)
		assert.Equal(t, []string{"p"}, n.Children[0].Options)

		entry := n.Children[1]
		assert.Equal(t, "/a", entry.Name)
		assert.Empty(t, entry.Type)
		assert.Equal(t, "*graph.nextMW", entry.Children[0].Name)
	}
}
