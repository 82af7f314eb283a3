// Package errors provides the sentinel errors used across taskrouter.
//
// Every error that callers need to branch on is declared here so it can be
// checked with errors.Is() regardless of how many layers wrapped it.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization.
var (
	// ErrMLUnavailable indicates the external ML classifier produced no usable
	// answer: spawn failure, non-zero exit, timeout, or unparseable output.
	ErrMLUnavailable = errors.New("ml classifier unavailable")

	// ErrMLLowConfidence indicates the ML classifier answered below the
	// acceptance threshold.
	ErrMLLowConfidence = errors.New("ml classifier confidence below threshold")

	// ErrUnknownLevel indicates a string that is not a known complexity level.
	ErrUnknownLevel = errors.New("unknown complexity level")

	// ErrUnknownCriticality indicates a string that is not a known criticality.
	ErrUnknownCriticality = errors.New("unknown criticality")

	// ErrEmptyTask indicates no task description was supplied on the command line.
	ErrEmptyTask = errors.New("task description is required")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidRouter indicates an invalid router configuration value.
	ErrConfigInvalidRouter = errors.New("invalid router configuration")

	// ErrConfigInvalidABTest indicates an invalid A/B test configuration value.
	ErrConfigInvalidABTest = errors.New("invalid abtest configuration")

	// ErrConfigInvalidML indicates an invalid ML classifier configuration value.
	ErrConfigInvalidML = errors.New("invalid ml configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidDate indicates a --since value that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrLogNotFound indicates the A/B log file does not exist yet.
	ErrLogNotFound = errors.New("ab log not found")

	// ErrConfigExists indicates config init would overwrite an existing file.
	ErrConfigExists = errors.New("config file already exists")

	// ErrLockTimeout indicates a file lock was still held by another process
	// when the wait ran out.
	ErrLockTimeout = errors.New("timed out waiting for file lock")
)

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, so it can be used inline:
//
//	return errors.Wrap(err, "failed to read config")
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ExitCode2Error marks an error as invalid user input (exit code 2).
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
