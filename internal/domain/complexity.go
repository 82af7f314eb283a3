// Package domain provides the shared types for task routing: complexity levels,
// criticality, pipelines and classification results.
//
// IMPORTANT: This package may import internal/constants and internal/errors.
// It MUST NOT import any other internal package.
package domain

import (
	"strings"

	trerrors "github.com/mrz1836/taskrouter/internal/errors"
)

// ComplexityLevel is the coarse bucket describing how much work a task needs.
// Values use snake_case for JSON serialization compatibility.
type ComplexityLevel string

// Complexity levels in ordinal order.
const (
	// LevelProgram means a deterministic script can answer the task; no LLM needed.
	LevelProgram ComplexityLevel = "program"

	// LevelTrivial is a one-line edit such as a typo fix.
	LevelTrivial ComplexityLevel = "trivial"

	// LevelSimple is a small, contained change.
	LevelSimple ComplexityLevel = "simple"

	// LevelMedium is a feature-sized change that benefits from review.
	LevelMedium ComplexityLevel = "medium"

	// LevelComplex touches architecture, security or migrations.
	LevelComplex ComplexityLevel = "complex"

	// LevelVeryComplex is a system-wide redesign.
	LevelVeryComplex ComplexityLevel = "very_complex"
)

// AllLevels lists every complexity level in ordinal order.
func AllLevels() []ComplexityLevel {
	return []ComplexityLevel{
		LevelProgram, LevelTrivial, LevelSimple,
		LevelMedium, LevelComplex, LevelVeryComplex,
	}
}

// String returns the string representation of the level.
func (l ComplexityLevel) String() string {
	return string(l)
}

// Ordinal returns the position of the level in AllLevels, or -1 if unknown.
func (l ComplexityLevel) Ordinal() int {
	for i, lvl := range AllLevels() {
		if lvl == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of the known levels.
func (l ComplexityLevel) Valid() bool {
	return l.Ordinal() >= 0
}

// Escalate returns the next level up. Program and very_complex do not move.
func (l ComplexityLevel) Escalate() ComplexityLevel {
	switch l {
	case LevelTrivial:
		return LevelSimple
	case LevelSimple:
		return LevelMedium
	case LevelMedium:
		return LevelComplex
	case LevelComplex:
		return LevelVeryComplex
	default:
		return l
	}
}

// Deescalate returns the next level down. Program and trivial do not move.
func (l ComplexityLevel) Deescalate() ComplexityLevel {
	switch l {
	case LevelVeryComplex:
		return LevelComplex
	case LevelComplex:
		return LevelMedium
	case LevelMedium:
		return LevelSimple
	case LevelSimple:
		return LevelTrivial
	default:
		return l
	}
}

// ParseComplexityLevel converts s (case-insensitive, surrounding space ignored)
// into a ComplexityLevel. "very-complex" is accepted as an alias.
func ParseComplexityLevel(s string) (ComplexityLevel, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	lvl := ComplexityLevel(normalized)
	if !lvl.Valid() {
		return "", trerrors.Wrapf(trerrors.ErrUnknownLevel, "%q", s)
	}
	return lvl, nil
}

// Criticality is a severity signal derived independently of complexity.
type Criticality string

// Criticality values from least to most severe.
const (
	CriticalityLow      Criticality = "low"
	CriticalityMedium   Criticality = "medium"
	CriticalityHigh     Criticality = "high"
	CriticalityCritical Criticality = "critical"
)

// AllCriticalities lists every criticality from least to most severe.
func AllCriticalities() []Criticality {
	return []Criticality{CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical}
}

// String returns the string representation of the criticality.
func (c Criticality) String() string {
	return string(c)
}

// Ordinal returns 0 for low up to 3 for critical, or -1 if unknown.
func (c Criticality) Ordinal() int {
	for i, crit := range AllCriticalities() {
		if crit == c {
			return i
		}
	}
	return -1
}

// ParseCriticality converts s (case-insensitive) into a Criticality.
func ParseCriticality(s string) (Criticality, error) {
	c := Criticality(strings.ToLower(strings.TrimSpace(s)))
	if c.Ordinal() < 0 {
		return "", trerrors.Wrapf(trerrors.ErrUnknownCriticality, "%q", s)
	}
	return c, nil
}
