//go:build unix

package flock

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trerrors "github.com/mrz1836/taskrouter/internal/errors"
)

// openTwice opens the same file through two descriptors. flock locks belong
// to the open file description, so the two conflict like two processes would.
func openTwice(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ab.jsonl")

	open := func() *os.File {
		//nolint:gosec // test file in a temp dir
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })
		return f
	}
	return open(), open()
}

func TestTryExclusive(t *testing.T) {
	t.Parallel()

	t.Run("second holder is refused", func(t *testing.T) {
		t.Parallel()
		a, b := openTwice(t)

		require.NoError(t, TryExclusive(a))
		require.Error(t, TryExclusive(b))
		require.NoError(t, Unlock(a))
		require.NoError(t, TryExclusive(b))
		require.NoError(t, Unlock(b))
	})

	t.Run("closing the file releases the lock", func(t *testing.T) {
		t.Parallel()
		a, b := openTwice(t)

		require.NoError(t, TryExclusive(a))
		require.NoError(t, a.Close())
		require.NoError(t, TryExclusive(b))
	})
}

func TestLock(t *testing.T) {
	t.Parallel()

	t.Run("free lock is taken at once", func(t *testing.T) {
		t.Parallel()
		a, _ := openTwice(t)

		require.NoError(t, Lock(context.Background(), a, time.Second, time.Millisecond))
		require.NoError(t, Unlock(a))
	})

	t.Run("waits for the holder", func(t *testing.T) {
		t.Parallel()
		a, b := openTwice(t)
		require.NoError(t, TryExclusive(a))

		go func() {
			time.Sleep(30 * time.Millisecond)
			_ = Unlock(a)
		}()

		require.NoError(t, Lock(context.Background(), b, 5*time.Second, 5*time.Millisecond))
		require.NoError(t, Unlock(b))
	})

	t.Run("times out", func(t *testing.T) {
		t.Parallel()
		a, b := openTwice(t)
		require.NoError(t, TryExclusive(a))
		defer func() { _ = Unlock(a) }()

		err := Lock(context.Background(), b, 30*time.Millisecond, 5*time.Millisecond)
		require.ErrorIs(t, err, trerrors.ErrLockTimeout)
		assert.Contains(t, err.Error(), "ab.jsonl")
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		a, b := openTwice(t)
		require.NoError(t, TryExclusive(a))
		defer func() { _ = Unlock(a) }()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, Lock(ctx, b, time.Minute, time.Millisecond), context.Canceled)
	})
}
