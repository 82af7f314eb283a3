package cli

import (
	stderrors "errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/tui"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input.
	ExitInvalidInput = 2
	// ExitInterrupted is used when SIGINT or SIGTERM stopped the run.
	ExitInterrupted = 130
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = tui.FormatText
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = tui.FormatJSON
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// JSON reports whether machine-readable output was requested.
func (f *GlobalFlags) JSON() bool {
	return f.Output == OutputJSON
}

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "log warnings and errors only")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds the global flags to viper so that TASKROUTER_OUTPUT,
// TASKROUTER_VERBOSE and TASKROUTER_QUIET work when the flag is not given,
// then copies the effective values back into flags.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command, flags *GlobalFlags) error {
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("TASKROUTER")
	v.AutomaticEnv()

	flags.Output = strings.ToLower(v.GetString("output"))
	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet") && !flags.Verbose

	return nil
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// invalidInputErrors are sentinels that mean the user asked for something
// that cannot exist, as opposed to something failing.
//
//nolint:gochecknoglobals // Read-only lookup list
var invalidInputErrors = []error{
	errors.ErrInvalidOutputFormat,
	errors.ErrEmptyTask,
	errors.ErrUnknownLevel,
	errors.ErrUnknownCriticality,
	errors.ErrInvalidDate,
}

// ExitCodeForError returns ExitSuccess for nil, ExitInvalidInput for bad
// arguments or flags and ExitError for everything else.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.IsExitCode2Error(err) {
		return ExitInvalidInput
	}
	for _, sentinel := range invalidInputErrors {
		if stderrors.Is(err, sentinel) {
			return ExitInvalidInput
		}
	}
	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}
	return ExitError
}

// isInvalidInputError catches cobra's own flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
	}
	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
