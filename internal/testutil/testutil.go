// Package testutil provides helpers shared by taskrouter tests.
//
// It should only be imported by test files (*_test.go).
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrz1836/taskrouter/internal/constants"
)

// Mock errors for simulating failures in tests.
var (
	// ErrMockSpawn simulates a subprocess that could not be started.
	ErrMockSpawn = errors.New("spawn failed")

	// ErrMockDiskFull simulates a write failure.
	ErrMockDiskFull = errors.New("no space left on device")

	// ErrMockML simulates an ML classifier failure that is not wrapped.
	ErrMockML = errors.New("ml exploded")
)

// IsolateHome points TASKROUTER_HOME at a fresh temp dir and returns it, so
// tests never touch the real ~/.taskrouter.
func IsolateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, dir)
	return dir
}

// WriteLines writes lines to path joined by newlines, creating parent dirs.
func WriteLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	data := strings.Join(lines, "\n")
	if len(lines) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadLines returns the non-empty lines of path.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test helper reading a temp file
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var out []string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
