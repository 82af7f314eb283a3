package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/taskrouter/internal/config"
	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/ctxutil"
	"github.com/mrz1836/taskrouter/internal/domain"
	trerrors "github.com/mrz1836/taskrouter/internal/errors"
)

// SubprocessClassifier implements MLClassifier by running an external command
// with the task text as its last argument.
type SubprocessClassifier struct {
	command  string
	args     []string
	timeout  time.Duration
	executor CommandExecutor
	logger   zerolog.Logger
}

// SubprocessOption is a functional option for configuring SubprocessClassifier.
type SubprocessOption func(*SubprocessClassifier)

// WithExecutor sets the command executor. Nil is ignored.
func WithExecutor(executor CommandExecutor) SubprocessOption {
	return func(c *SubprocessClassifier) {
		if executor != nil {
			c.executor = executor
		}
	}
}

// WithLogger sets the logger for the classifier.
func WithLogger(logger zerolog.Logger) SubprocessOption {
	return func(c *SubprocessClassifier) {
		c.logger = logger
	}
}

// NewSubprocessClassifier creates a classifier from the ml config section.
// A nil config uses the built-in defaults.
func NewSubprocessClassifier(cfg *config.MLConfig, opts ...SubprocessOption) *SubprocessClassifier {
	if cfg == nil {
		cfg = &config.DefaultConfig().ML
	}

	c := &SubprocessClassifier{
		command:  cfg.Command,
		args:     config.ResolveScriptArgs(cfg.Args, workingDir()),
		timeout:  cfg.Timeout,
		executor: &DefaultExecutor{},
		logger:   zerolog.Nop(),
	}
	if c.command == "" {
		c.command = constants.DefaultMLCommand
	}
	if c.timeout <= 0 {
		c.timeout = constants.DefaultMLTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}

// Timeout returns the per-call timeout.
func (c *SubprocessClassifier) Timeout() time.Duration {
	return c.timeout
}

func (c *SubprocessClassifier) cliInfo() CLIInfo {
	return CLIInfo{
		Name:        c.command,
		InstallHint: "install it or set ml.command in ~/.taskrouter/config.yaml",
		ErrType:     trerrors.ErrMLUnavailable,
	}
}

// Classify runs the command once. It is never retried: the caller falls back
// to the rules, which is cheaper than waiting on a second attempt.
//
// Any well-formed JSON answer is returned as is, including one that carries
// an error field or an unknown label; whether it may be used is up to the caller.
func (c *SubprocessClassifier) Classify(ctx context.Context, text string) (*domain.MLClassification, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", trerrors.ErrMLUnavailable, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(append([]string(nil), c.args...), text)
	//nolint:gosec // Command comes from user configuration, text is a single argv entry
	cmd := exec.CommandContext(runCtx, c.command, args...)
	killProcessGroup(cmd)
	cmd.WaitDelay = constants.MLWaitDelay

	start := time.Now()
	stdout, stderr, err := c.executor.Execute(runCtx, cmd)
	elapsed := time.Since(start)

	// The child exited cleanly but a descendant kept its pipes open; what was
	// written before WaitDelay expired is the answer.
	if errors.Is(err, exec.ErrWaitDelay) && runCtx.Err() == nil {
		err = nil
	}

	if err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			if ctxutil.TimedOut(ctxErr) {
				c.logger.Debug().Dur("elapsed", elapsed).Dur("timeout", c.timeout).Msg("ml classifier timed out")
				return nil, fmt.Errorf("%w: %s timed out after %s: %w", trerrors.ErrMLUnavailable, c.command, c.timeout, ctxErr)
			}
			c.logger.Debug().Dur("elapsed", elapsed).Msg("ml classifier interrupted")
			return nil, fmt.Errorf("%w: %w", trerrors.ErrMLUnavailable, ctxErr)
		}
		c.logger.Debug().Dur("elapsed", elapsed).Err(err).Msg("ml classifier failed")
		return nil, WrapCLIExecutionError(c.cliInfo(), err, stderr)
	}

	resp, err := parseResponse[domain.MLClassification](stdout, trerrors.ErrMLUnavailable)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Dur("elapsed", elapsed).
		Str("complexity", resp.Complexity).
		Str("error", resp.Error).
		Float64("confidence", resp.Confidence).
		Str("method", resp.Method).
		Msg("ml classifier answered")

	return resp, nil
}
