package tui

import trerrors "github.com/mrz1836/taskrouter/internal/errors"

// ActionableError is an error with a suggested next step for the user.
//
//	err := NewActionableError("No A/B log has been written yet.", "Classify a few tasks first.")
//	out.Error(err)
//	// ✗ No A/B log has been written yet.
//	//   ▸ Try: Classify a few tasks first.
type ActionableError struct {
	Message    string
	Suggestion string
	cause      error
}

// NewActionableError creates an ActionableError.
func NewActionableError(msg, suggestion string) *ActionableError {
	return &ActionableError{Message: msg, Suggestion: suggestion}
}

// FromError builds an ActionableError from a known sentinel, keeping err as
// the cause so errors.Is still works. Unknown errors keep their own message.
func FromError(err error) *ActionableError {
	if err == nil {
		return nil
	}
	msg, action := trerrors.Actionable(err)
	return &ActionableError{Message: msg, Suggestion: action, cause: err}
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	return e.Message
}

// Unwrap returns the original error, if any.
func (e *ActionableError) Unwrap() error {
	return e.cause
}
