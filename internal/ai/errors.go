package ai

import (
	"fmt"
	"strings"
)

// CLIInfo contains command-specific information for error messages.
type CLIInfo struct {
	Name        string // Executable name (e.g., "python3")
	InstallHint string // What to do when the executable is missing
	ErrType     error  // Sentinel error every failure wraps
}

// WrapCLIExecutionError wraps a subprocess failure with command context.
// stderr is preferred over the bare exit status because the script prints
// its traceback there.
func WrapCLIExecutionError(info CLIInfo, err error, stderr []byte) error {
	stderrStr := strings.TrimSpace(string(stderr))

	if strings.Contains(stderrStr, "command not found") ||
		strings.Contains(err.Error(), "executable file not found") {
		return fmt.Errorf("%w: %s not found - %s", info.ErrType, info.Name, info.InstallHint)
	}

	if strings.Contains(stderrStr, "No module named") {
		return fmt.Errorf("%w: missing python dependency: %s", info.ErrType, lastLine(stderrStr))
	}

	if stderrStr != "" {
		return fmt.Errorf("%w: %s", info.ErrType, lastLine(stderrStr))
	}

	return fmt.Errorf("%w: %s", info.ErrType, err.Error())
}

// lastLine returns the final non-empty line, which for a Python traceback is
// the exception message.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return s
}
