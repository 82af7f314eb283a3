// Package ai runs the external ML complexity classifier.
//
// The classifier is a separate program (by default a Python script) that
// receives the task text as its last argument and prints one JSON object on
// stdout. This package builds the command, bounds it with a timeout, parses
// the answer and maps every failure onto errors.ErrMLUnavailable so the A/B
// harness can fall back to the rules.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// internal/config, internal/ctxutil and internal/domain. It MUST NOT import
// internal/abtest or internal/cli.
package ai

import (
	"context"

	"github.com/mrz1836/taskrouter/internal/domain"
)

// MLClassifier classifies a task description with a learned model.
//
// Implementations must return an error wrapping errors.ErrMLUnavailable for
// any failure, and must honor ctx cancellation.
type MLClassifier interface {
	Classify(ctx context.Context, text string) (*domain.MLClassification, error)
}
