package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskrouter/internal/domain"
	"github.com/mrz1836/taskrouter/internal/errors"
)

func TestRootCmd_Help(t *testing.T) {
	t.Parallel()

	cmd := newRootCmdWithDeps(&GlobalFlags{}, BuildInfo{Version: "test"}, newTestEnv(t).deps)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, want := range []string{"taskrouter", "--output", "--verbose", "--quiet", "--no-ab", "classify", "pipeline", "batch", "ab", "config"} {
		assert.Contains(t, output, want)
	}
}

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	t.Parallel()

	stdout, _, err := newTestEnv(t).run()
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		info           BuildInfo
		expectContains []string
	}{
		{"full version info", BuildInfo{Version: "1.0.0", Commit: "abc1234", Date: "2026-01-01"}, []string{"1.0.0", "abc1234", "2026-01-01"}},
		{"default dev version", BuildInfo{}, []string{"dev", "none", "unknown"}},
		{"partial version info", BuildInfo{Version: "2.0.0-beta"}, []string{"2.0.0-beta", "none", "unknown"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cmd := newRootCmdWithDeps(&GlobalFlags{}, tc.info, newTestEnv(t).deps)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{"--version"})
			require.NoError(t, cmd.Execute())

			for _, expected := range tc.expectContains {
				assert.Contains(t, buf.String(), expected)
			}
		})
	}
}

func TestRootCmd_BareTaskIsClassified(t *testing.T) {
	t.Parallel()

	stdout, _, err := newTestEnv(t).run("-o", "json", "Fix", "typo", "in", "README")
	require.NoError(t, err)

	var res domain.ClassificationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, domain.LevelTrivial, res.Level)
	assert.InDelta(t, 0.95, res.Confidence, 1e-9)
}

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	t.Parallel()

	_, _, err := newTestEnv(t).run("-o", "xml", "classify", "hello")
	require.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_VerboseAndQuietConflict(t *testing.T) {
	t.Parallel()

	_, _, err := newTestEnv(t).run("-v", "-q", "classify", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestFormatVersion(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1.2.3 (commit: abc, built: today)", formatVersion(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"}))
}
