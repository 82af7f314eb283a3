package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/testutil"
)

func TestLevelFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.DebugLevel, levelFor(true, false))
	assert.Equal(t, zerolog.WarnLevel, levelFor(false, true))
	assert.Equal(t, zerolog.InfoLevel, levelFor(false, false))
	assert.Equal(t, zerolog.DebugLevel, levelFor(true, true))
}

func TestConsoleWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Same(t, &buf, consoleWriter(&buf, false))
	assert.IsType(t, zerolog.ConsoleWriter{}, consoleWriter(&buf, true))
}

func TestInitLoggerWithWriter(t *testing.T) {
	t.Run("quiet drops info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitLoggerWithWriter(false, true, &buf)
		logger.Info().Msg("hidden")
		logger.Warn().Msg("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"event":"shown"`)
		assert.Contains(t, out, `"ts":`)
	})

	t.Run("verbose keeps debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitLoggerWithWriter(true, false, &buf)
		logger.Debug().Str("task", "Fix typo").Msg("routing")
		assert.Contains(t, buf.String(), `"task":"Fix typo"`)
	})
}

func TestLogFilePath(t *testing.T) {
	home := testutil.IsolateHome(t)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, constants.LogsDir, constants.CLILogFileName), path)
}

func TestInitLogger_WritesRedactedFile(t *testing.T) {
	testutil.IsolateHome(t)
	t.Cleanup(CloseLogFile)

	logger := InitLogger(false, false)
	logger.Info().Str("header", "key sk-ant-api03-abcdefghijkl").Msg("ml call")
	CloseLogFile()

	path, err := LogFilePath()
	require.NoError(t, err)
	data, err := os.ReadFile(path) //nolint:gosec // test reads its own temp file
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "ml call")
	assert.NotContains(t, out, "abcdefghijkl")
	assert.Contains(t, out, "[REDACTED]")
}
