package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is ordered; the first errors.Is() match wins.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrEmptyTask,
		info: ErrorInfo{
			Message: "No task description was given.",
			Action:  `Pass the task as an argument: taskrouter classify "Fix typo in README"`,
		},
	},
	{
		err: ErrUnknownLevel,
		info: ErrorInfo{
			Message: "Unknown complexity level.",
			Action:  "Use one of: program, trivial, simple, medium, complex, very_complex.",
		},
	},
	{
		err: ErrUnknownCriticality,
		info: ErrorInfo{
			Message: "Unknown criticality.",
			Action:  "Use one of: low, medium, high, critical.",
		},
	},
	{
		err: ErrInvalidDate,
		info: ErrorInfo{
			Message: "The --since value must be a date in YYYY-MM-DD form.",
		},
	},
	{
		err: ErrLogNotFound,
		info: ErrorInfo{
			Message: "No A/B log has been written yet.",
			Action:  "Classify a few tasks with the A/B harness enabled, then rerun the report.",
		},
	},
	{
		err: ErrConfigExists,
		info: ErrorInfo{
			Message: "A config file already exists at that location.",
			Action:  "Re-run with --force to overwrite it.",
		},
	},
	{
		err: ErrConfigInvalidABTest,
		info: ErrorInfo{
			Message: "The abtest section of the configuration is invalid.",
			Action:  "Run 'taskrouter config show' to inspect the effective values.",
		},
	},
	{
		err: ErrConfigInvalidML,
		info: ErrorInfo{
			Message: "The ml section of the configuration is invalid.",
			Action:  "Run 'taskrouter config show' to inspect the effective values.",
		},
	},
	{
		err: ErrConfigInvalidRouter,
		info: ErrorInfo{
			Message: "The router section of the configuration is invalid.",
			Action:  "Run 'taskrouter config show' to inspect the effective values.",
		},
	},
}

func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for err.
// Unrecognized errors return their original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns the user-friendly message and a suggested action.
// The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
