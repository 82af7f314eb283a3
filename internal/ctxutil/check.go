// Package ctxutil provides context utility functions.
package ctxutil

import (
	"context"
	"errors"
)

// Canceled returns ctx.Err(): nil while the context is live, otherwise
// context.Canceled or context.DeadlineExceeded. It is used at the entry of
// blocking operations.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}

// TimedOut reports whether err is, or wraps, a deadline expiry.
func TimedOut(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// Interrupted reports whether err is, or wraps, an explicit cancellation
// such as the one the signal handler triggers on Ctrl+C.
func Interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
