// Package clock provides an abstraction for time operations to improve testability.
// The A/B harness stamps every record through a Clock so tests can pin the time.
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that always returns the same instant.
type Fixed struct {
	T time.Time
}

// Now returns the fixed time.
func (f Fixed) Now() time.Time {
	return f.T
}

// Timestamp formats c.Now() in UTC as RFC 3339 with nanoseconds, the format
// used in A/B log records. A nil clock uses the system time.
func Timestamp(c Clock) string {
	if c == nil {
		c = RealClock{}
	}
	return c.Now().UTC().Format(time.RFC3339Nano)
}

// Ensure implementations satisfy Clock.
var (
	_ Clock = RealClock{}
	_ Clock = Fixed{}
)
