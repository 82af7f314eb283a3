package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trerrors "github.com/mrz1836/taskrouter/internal/errors"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrMLUnavailable", trerrors.ErrMLUnavailable, "ml classifier unavailable"},
		{"ErrMLLowConfidence", trerrors.ErrMLLowConfidence, "ml classifier confidence below threshold"},
		{"ErrUnknownLevel", trerrors.ErrUnknownLevel, "unknown complexity level"},
		{"ErrUnknownCriticality", trerrors.ErrUnknownCriticality, "unknown criticality"},
		{"ErrEmptyTask", trerrors.ErrEmptyTask, "task description is required"},
		{"ErrInvalidOutputFormat", trerrors.ErrInvalidOutputFormat, "invalid output format"},
		{"ErrLockTimeout", trerrors.ErrLockTimeout, "timed out waiting for file lock"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		require.NoError(t, trerrors.Wrap(nil, "context"))
		require.NoError(t, trerrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("preserves chain", func(t *testing.T) {
		err := trerrors.Wrap(trerrors.ErrMLUnavailable, "spawn python3")
		require.Error(t, err)
		assert.Equal(t, "spawn python3: ml classifier unavailable", err.Error())
		assert.ErrorIs(t, err, trerrors.ErrMLUnavailable)
	})

	t.Run("formats message", func(t *testing.T) {
		err := trerrors.Wrapf(trerrors.ErrUnknownLevel, "parse %q", "huge")
		assert.Equal(t, `parse "huge": unknown complexity level`, err.Error())
		assert.ErrorIs(t, err, trerrors.ErrUnknownLevel)
	})
}

func TestExitCode2Error(t *testing.T) {
	base := fmt.Errorf("%w: yaml", trerrors.ErrInvalidOutputFormat)
	err := trerrors.NewExitCode2Error(base)

	assert.True(t, trerrors.IsExitCode2Error(err))
	assert.True(t, trerrors.IsExitCode2Error(fmt.Errorf("outer: %w", err)))
	assert.False(t, trerrors.IsExitCode2Error(base))
	assert.ErrorIs(t, err, trerrors.ErrInvalidOutputFormat)
	assert.Equal(t, base.Error(), err.Error())
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, trerrors.UserMessage(nil))
	assert.Equal(t, "No task description was given.", trerrors.UserMessage(trerrors.ErrEmptyTask))

	wrapped := trerrors.Wrap(trerrors.ErrLogNotFound, "open log")
	assert.Equal(t, "No A/B log has been written yet.", trerrors.UserMessage(wrapped))

	plain := errors.New("something odd")
	assert.Equal(t, "something odd", trerrors.UserMessage(plain))
}

func TestActionable(t *testing.T) {
	msg, action := trerrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)

	msg, action = trerrors.Actionable(trerrors.Wrap(trerrors.ErrUnknownLevel, "flag --level"))
	assert.Equal(t, "Unknown complexity level.", msg)
	assert.Contains(t, action, "very_complex")

	msg, action = trerrors.Actionable(trerrors.ErrInvalidDate)
	assert.NotEmpty(t, msg)
	assert.Empty(t, action)
}
