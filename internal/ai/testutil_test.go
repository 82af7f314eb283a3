package ai

// Most tests here use MockExecutor in place of the subprocess. The unix-only
// exec tests run sh for timeout behavior.

import (
	"context"
	"errors"
	"os/exec"
)

var (
	errTestExitStatus1   = errors.New("exit status 1")
	errTestExitStatus127 = errors.New("exit status 127")
	errTestExecNotFound  = errors.New(`exec: "python9": executable file not found in $PATH`)
)

// MockExecutor is a test implementation of CommandExecutor.
type MockExecutor struct {
	StdoutData []byte
	StderrData []byte
	Err        error
	// Block makes Execute wait for ctx to end and return its error.
	Block bool
	// CapturedCmd stores the last executed command for verification.
	CapturedCmd *exec.Cmd
	Calls       int
}

func (m *MockExecutor) Execute(ctx context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	m.CapturedCmd = cmd
	m.Calls++
	if m.Block {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	return m.StdoutData, m.StderrData, m.Err
}
