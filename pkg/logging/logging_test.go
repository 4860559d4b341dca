package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity, NoFile)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "httpgraph.log")

	SetupLogger(1, path)
	logger := GetLogger("test")
	logger.Info().Msg("hello from test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"component":"test"`), string(data))
	assert.Contains(t, string(data), "hello from test")

	log.Logger = zerolog.Nop()
}

func TestDefaultLogFile(t *testing.T) {
	assert.Equal(t, "httpgraph.log", filepath.Base(DefaultLogFile()))
	assert.Equal(t, "httpgraph", filepath.Base(filepath.Dir(DefaultLogFile())))
}
