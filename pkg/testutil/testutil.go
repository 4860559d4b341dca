package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

// CreateFile creates a file with the given content in the specified directory.
// Parent directories are created as needed.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing %s", path)
	return path
}

// TempFile creates name with content in a fresh temp dir.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()
	return CreateFile(t, t.TempDir(), name, content)
}

// CreateDir creates a directory in the specified parent directory.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755), "creating %s", path)
	return path
}

// ReadFile reads the content of a file and returns it as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "reading %s", path)
	return string(content)
}

// Env is an isolated XDG environment.
type Env struct {
	ConfigHome string
	StateHome  string
}

// IsolateXDG points the XDG config and state dirs at empty temp dirs for
// the duration of the test.
func IsolateXDG(t *testing.T) Env {
	t.Helper()

	env := Env{ConfigHome: t.TempDir(), StateHome: t.TempDir()}
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return env
}

// Lines joins ls into newline terminated output, the shape of a rendered
// tree.
func Lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}
