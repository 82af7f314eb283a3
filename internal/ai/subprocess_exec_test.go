//go:build unix

package ai

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskrouter/internal/config"
	trerrors "github.com/mrz1836/taskrouter/internal/errors"
)

func shellClassifier(t *testing.T, script string, timeout time.Duration) *SubprocessClassifier {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return NewSubprocessClassifier(&config.MLConfig{
		Command: "sh",
		Args:    []string{"-c", script, "_"},
		Timeout: timeout,
	})
}

func TestSubprocessClassifier_RealCommand(t *testing.T) {
	t.Parallel()

	c := shellClassifier(t, `printf '{"complexity":"medium","confidence":0.8,"method":"ml","message":"%s"}\n' "$1"`, 5*time.Second)
	res, err := c.Classify(context.Background(), "Добавить API endpoint")

	require.NoError(t, err)
	assert.Equal(t, "medium", res.Complexity)
	assert.Equal(t, "Добавить API endpoint", res.Message)
}

func TestSubprocessClassifier_TimeoutKillsChildren(t *testing.T) {
	t.Parallel()

	// sleep runs as a child of sh and inherits its output pipes.
	c := shellClassifier(t, `sleep 3; echo '{}'`, 200*time.Millisecond)

	start := time.Now()
	res, err := c.Classify(context.Background(), "task")
	elapsed := time.Since(start)

	assert.Nil(t, res)
	require.ErrorIs(t, err, trerrors.ErrMLUnavailable)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, elapsed, 2*time.Second)
}

func TestSubprocessClassifier_TimeoutWithBackgroundChild(t *testing.T) {
	t.Parallel()

	// The background child holds stdout after sh itself has exited.
	c := shellClassifier(t, `(sleep 3; echo late) & sleep 5`, 200*time.Millisecond)

	start := time.Now()
	_, err := c.Classify(context.Background(), "task")

	require.ErrorIs(t, err, trerrors.ErrMLUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSubprocessClassifier_AnswerWithLingeringChild(t *testing.T) {
	t.Parallel()

	c := shellClassifier(t, `(sleep 3) & echo '{"complexity":"simple","confidence":0.9,"method":"ml"}'`, 5*time.Second)

	start := time.Now()
	res, err := c.Classify(context.Background(), "task")

	require.NoError(t, err)
	assert.Equal(t, "simple", res.Complexity)
	assert.Less(t, time.Since(start), 2*time.Second)
}
