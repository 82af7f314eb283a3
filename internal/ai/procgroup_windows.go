//go:build windows

package ai

import "os/exec"

// killProcessGroup is a no-op on Windows; exec kills the direct child and
// WaitDelay releases the pipes.
func killProcessGroup(_ *exec.Cmd) {}
