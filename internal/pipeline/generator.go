// Package pipeline turns a complexity level into a pipeline of model stages
// and estimates what running it would cost.
package pipeline

import (
	"math"

	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/domain"
)

// Generator picks pipelines. The zero value is not usable; call NewGenerator.
type Generator struct {
	largeContextThreshold int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLargeContextThreshold sets the context size above which the _large
// variant of simple, medium and complex pipelines is chosen.
// Non-positive values are ignored.
func WithLargeContextThreshold(tokens int) Option {
	return func(g *Generator) {
		if tokens > 0 {
			g.largeContextThreshold = tokens
		}
	}
}

// NewGenerator creates a Generator with the default threshold.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{largeContextThreshold: constants.DefaultLargeContextThreshold}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LargeContextThreshold returns the configured threshold.
func (g *Generator) LargeContextThreshold() int {
	return g.largeContextThreshold
}

// Generate returns the pipeline name and stages for a level.
//
// Criticality is accepted so callers can thread it through, but the stage
// tables do not depend on it. An unknown level gets the complex pipeline for
// its context size, which is the safest choice.
func (g *Generator) Generate(level domain.ComplexityLevel, contextSize int, _ domain.Criticality) (string, domain.Pipeline) {
	name := g.Name(level, contextSize)
	return name, table(name)
}

// Name returns only the pipeline name for a level and context size.
func (g *Generator) Name(level domain.ComplexityLevel, contextSize int) string {
	large := contextSize > g.largeContextThreshold

	switch level {
	case domain.LevelProgram:
		return NameProgram
	case domain.LevelTrivial:
		return NameTrivial
	case domain.LevelSimple:
		return pick(large, NameSimpleLarge, NameSimpleSmall)
	case domain.LevelMedium:
		return pick(large, NameMediumLarge, NameMediumSmall)
	case domain.LevelVeryComplex:
		return NameVeryComplex
	default:
		return pick(large, NameComplexLarge, NameComplexSmall)
	}
}

func pick(large bool, ifLarge, ifSmall string) string {
	if large {
		return ifLarge
	}
	return ifSmall
}

// Plan is a generated pipeline together with its cost figures.
type Plan struct {
	Name           string
	Pipeline       domain.Pipeline
	EstimatedCost  float64
	BaselineCost   float64
	SavingsPercent float64
}

// Plan generates the pipeline for level and prices it.
func (g *Generator) Plan(level domain.ComplexityLevel, contextSize int, criticality domain.Criticality) Plan {
	name, p := g.Generate(level, contextSize, criticality)
	cost := EstimateCost(p, contextSize)
	baseline := BaselineCost(contextSize)
	return Plan{
		Name:           name,
		Pipeline:       p,
		EstimatedCost:  cost,
		BaselineCost:   baseline,
		SavingsPercent: SavingsPercent(cost, baseline),
	}
}

// SavingsPercent is how much cheaper cost is than baseline, in percent,
// rounded to two decimals. It is negative when cost exceeds the baseline.
func SavingsPercent(cost, baseline float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return math.Round((baseline-cost)/baseline*100*100) / 100
}
