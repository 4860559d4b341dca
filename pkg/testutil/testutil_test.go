package testutil

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestFiles(t *testing.T) {
	dir := t.TempDir()

	path := CreateFile(t, dir, "a/b/c.txt", "hello")
	assert.Equal(t, filepath.Join(dir, "a", "b", "c.txt"), path)
	assert.Equal(t, "hello", ReadFile(t, path))

	sub := CreateDir(t, dir, "x/y")
	info, err := os.Stat(sub)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Equal(t, "v", ReadFile(t, TempFile(t, "k.toml", "v")))
}

func TestIsolateXDG(t *testing.T) {
	env := IsolateXDG(t)
	assert.Equal(t, env.ConfigHome, xdg.ConfigHome)
	assert.Equal(t, env.StateHome, xdg.StateHome)
}

func TestHandlers(t *testing.T) {
	rec := Get(Text("hi"), "/x")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", rec.Body.String())

	rec = Serve(http.HandlerFunc(EchoPath), http.MethodPost, "/a/b")
	assert.Equal(t, "/a/b", rec.Body.String())
}

func TestLines(t *testing.T) {
	assert.Equal(t, "a\n b\n", Lines("a", " b"))
}
