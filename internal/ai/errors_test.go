package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trerrors "github.com/mrz1836/taskrouter/internal/errors"
)

func TestWrapCLIExecutionError(t *testing.T) {
	t.Parallel()

	info := CLIInfo{
		Name:        "python3",
		InstallHint: "install python",
		ErrType:     trerrors.ErrMLUnavailable,
	}

	t.Run("command not found", func(t *testing.T) {
		t.Parallel()
		err := WrapCLIExecutionError(info, errTestExitStatus127, []byte("sh: python3: command not found"))
		require.ErrorIs(t, err, trerrors.ErrMLUnavailable)
		assert.Contains(t, err.Error(), "python3 not found - install python")
	})

	t.Run("missing module", func(t *testing.T) {
		t.Parallel()
		err := WrapCLIExecutionError(info, errTestExitStatus1,
			[]byte("Traceback...\nModuleNotFoundError: No module named 'sklearn'\n"))
		require.ErrorIs(t, err, trerrors.ErrMLUnavailable)
		assert.Contains(t, err.Error(), "missing python dependency")
		assert.Contains(t, err.Error(), "sklearn")
	})

	t.Run("falls back to the error text", func(t *testing.T) {
		t.Parallel()
		err := WrapCLIExecutionError(info, errTestExitStatus1, nil)
		assert.Equal(t, "ml classifier unavailable: exit status 1", err.Error())
	})
}

func TestLastLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "c", lastLine("a\nb\nc\n\n"))
	assert.Equal(t, "only", lastLine("only"))
}
