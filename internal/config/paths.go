package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/errors"
)

// GlobalConfigDir returns the taskrouter home directory, ~/.taskrouter by default.
// TASKROUTER_HOME overrides it.
func GlobalConfigDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.Home), nil
}

// ProjectConfigDir returns the relative path to the project configuration directory.
func ProjectConfigDir() string {
	return constants.Home
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.ConfigFileName)
}

// LogsDir returns the directory for the rotating CLI log.
func LogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}

// DefaultABLogPath returns ~/.taskrouter/tracking/ab_test_log.jsonl.
func DefaultABLogPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.TrackingDir, constants.ABLogFileName), nil
}

// ResolveLogPath returns LogPath, or the default location when it is empty.
func (c *ABTestConfig) ResolveLogPath() (string, error) {
	if c.LogPath != "" {
		return c.LogPath, nil
	}
	return DefaultABLogPath()
}

// ResolveScriptArgs returns a copy of args where each relative path with a
// directory part, such as scripts/ml_classify.py, is replaced by the first
// existing file found under dir or one of its parents. Flags, bare words and
// paths found nowhere are kept as given.
func ResolveScriptArgs(args []string, dir string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = arg
		if dir == "" || !isRelativeScript(arg) {
			continue
		}
		if found, ok := findUpward(dir, arg); ok {
			out[i] = found
		}
	}
	return out
}

func isRelativeScript(arg string) bool {
	return !strings.HasPrefix(arg, "-") &&
		!filepath.IsAbs(arg) &&
		strings.ContainsRune(filepath.ToSlash(arg), '/')
}

func findUpward(dir, rel string) (string, bool) {
	for {
		candidate := filepath.Join(dir, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
