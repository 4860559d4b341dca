package httpgraph

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/pipeline"
	"github.com/arthur-debert/httpgraph/pkg/testutil"
)

// execute runs the CLI with an empty config dir and no log file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	testutil.IsolateXDG(t)
	t.Setenv("HTTPGRAPH_LOG_FILE", "-")
	t.Setenv("NO_COLOR", "1")

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRenderDemo(t *testing.T) {
	out, err := execute(t, "render")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "*middleware.Logger(stderr)", lines[0])
	assert.Equal(t, " - *middleware.URLMap", lines[1])
	assert.Contains(t, out, "    |- http[s]://api.example.com/v1\n")
	assert.Equal(t, "          - *http.redirectHandler(302, /index.html)", lines[len(lines)-1])
}

func TestRenderFile(t *testing.T) {
	path := testutil.TempFile(t, "site.yaml", `
pipeline:
  kind: strip
  prefix: /app
  next:
    kind: text
    body: hi
`)

	out, err := execute(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, "*pipeline.Strip\n - *pipeline.Text\n", out)
}

func TestRenderFormats(t *testing.T) {
	out, err := execute(t, "render", "--format", "json")
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	assert.Equal(t, "*middleware.Logger", root["type"])

	out, err = execute(t, "render", "-f", "xml")
	require.NoError(t, err)
	assert.Contains(t, out, "<graph>")

	out, err = execute(t, "render", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "middleware.Logger")
	assert.True(t, strings.HasPrefix(out, "name: "), out)
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.txt")

	out, err := execute(t, "render", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.True(t, strings.HasPrefix(testutil.ReadFile(t, path), "*middleware.Logger(stderr)\n"))
}

func TestRenderOutputOpenError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tree.txt")

	_, err := execute(t, "render", "-o", path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutputOpen), "got %v", err)
}

func TestRenderSource(t *testing.T) {
	out, err := execute(t, "render", "--source")
	require.NoError(t, err)
	assert.Equal(t, pipeline.DemoSource(), out)
}

func TestRenderErrors(t *testing.T) {
	_, err := execute(t, "render", filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrPipelineLoad), "got %v", err)

	_, err = execute(t, "render", testutil.TempFile(t, "bad.toml", "[pipeline]\nkind = \"warp\"\n"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrPipelineInvalid), "got %v", err)

	_, err = execute(t, "render", "--format", "bogus")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
}

func TestWrappers(t *testing.T) {
	out, err := execute(t, "wrappers")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, MsgWrappersTitle+"\n"))
	assert.Contains(t, out, "  github.com/arthur-debert/httpgraph/pkg/middleware.Logger\n")
	assert.Contains(t, out, "  net/http.timeoutHandler\n")
}

func TestKinds(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, MsgKindsTitle+"\n"))
	for _, k := range []string{"logger", "urlmap", "cascade", "router", "timeout", "redirect", "files", "text", "strip"} {
		assert.Contains(t, out, "  "+k+"\n")
	}
}

func TestConfig(t *testing.T) {
	out, err := execute(t, "config", "--format", "json", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "format = 'json'")
	assert.Contains(t, out, "strict = true")

	out, err = execute(t, "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "# format = ")
}

func TestConfigFileAndEnv(t *testing.T) {
	path := testutil.TempFile(t, "httpgraph.toml", "[output]\nformat = \"yaml\"\ncolor = \"never\"\n")
	t.Setenv("HTTPGRAPH_OUTPUT_COLOR", "always")

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "format = 'yaml'")
	assert.Contains(t, out, "color = 'always'")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "httpgraph dev (commit unknown, built unknown)\n", out)
}

func TestNoCommand(t *testing.T) {
	_, err := execute(t)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
}

func TestHelpTopics(t *testing.T) {
	out, err := execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "  adapters\n")
	assert.Contains(t, out, "  format\n")
	assert.Contains(t, out, "  pipelines\n")
	assert.Contains(t, out, "  --format\n")

	out, err = execute(t, "help", "pipelines")
	require.NoError(t, err)
	assert.Contains(t, out, "urlmap")
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "httpgraph")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestTemplateFormatting(t *testing.T) {
	assert.Equal(t, "USAGE:", formatUpper("usage:"))
	// tests do not run on a terminal
	assert.Equal(t, "flags", formatBold("flags"))
	assert.Equal(t, "FLAGS", formatBoldUpper("flags"))
}
