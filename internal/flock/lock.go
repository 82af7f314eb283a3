package flock

import (
	"context"
	"fmt"
	"os"
	"time"

	trerrors "github.com/mrz1836/taskrouter/internal/errors"
)

// Lock takes an exclusive lock on f, retrying every interval until it
// succeeds. It gives up with ErrLockTimeout once timeout has passed, or with
// the context error when ctx ends first. The file is left open either way.
func Lock(ctx context.Context, f *os.File, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := TryExclusive(f)
		if err == nil {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w after %v on %s: %w", trerrors.ErrLockTimeout, timeout, f.Name(), err)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
