package classifier

import (
	"github.com/rs/zerolog"

	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/domain"
	"github.com/mrz1836/taskrouter/internal/pipeline"
)

// Score weights per matched pattern.
const (
	WeightVeryComplex = 5
	WeightComplex     = 3
	WeightMedium      = 1
)

// Score thresholds.
const (
	ThresholdVeryComplex = 5
	ThresholdComplex     = 3
	ThresholdMedium      = 1
)

// Confidence reported for each outcome.
const (
	ConfidenceProgram     = 0.98
	ConfidenceTrivial     = 0.95
	ConfidenceVeryComplex = 0.90
	ConfidenceComplex     = 0.85
	ConfidenceRepetitive  = 0.82
	ConfidenceMedium      = 0.80
	ConfidenceSimple      = 0.75
)

// Classifier is the rule-based classifier. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	generator *pipeline.Generator
	logger    zerolog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithGenerator sets the pipeline generator. Nil is ignored.
func WithGenerator(g *pipeline.Generator) Option {
	return func(c *Classifier) {
		if g != nil {
			c.generator = g
		}
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		generator: pipeline.NewGenerator(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generator returns the pipeline generator the classifier prices results with.
func (c *Classifier) Generator() *pipeline.Generator {
	return c.generator
}

// Classify decides the complexity of text and returns a complete result with
// pipeline and cost. It never fails; empty text is a simple task.
func (c *Classifier) Classify(text string) domain.ClassificationResult {
	normalized := normalize(text)

	contextSize := estimateContextSize(normalized)
	criticality := detectCriticality(normalized)
	level, confidence, scores := classifyLevel(normalized, contextSize)

	res := c.Complete(level, confidence, contextSize, criticality)
	res.Method = domain.MethodRules
	res.Scores = scores
	if level == domain.LevelProgram {
		res.ProgramSuggestion = suggestProgram(normalized)
	}

	c.logger.Debug().
		Str("level", level.String()).
		Float64("confidence", confidence).
		Int("context_size", contextSize).
		Str("criticality", criticality.String()).
		Str("pipeline", res.PipelineName).
		Msg("task classified by rules")

	return res
}

// Complete builds a result for an already decided level, filling in the
// pipeline and cost figures. Method is left for the caller to set.
func (c *Classifier) Complete(level domain.ComplexityLevel, confidence float64, contextSize int, criticality domain.Criticality) domain.ClassificationResult {
	plan := c.generator.Plan(level, contextSize, criticality)
	return domain.ClassificationResult{
		Level:          level,
		Confidence:     confidence,
		PipelineName:   plan.Name,
		Pipeline:       plan.Pipeline,
		ContextSize:    contextSize,
		Criticality:    criticality,
		EstimatedCost:  plan.EstimatedCost,
		BaselineCost:   plan.BaselineCost,
		SavingsPercent: plan.SavingsPercent,
	}
}

// classifyLevel runs the ordered rules. Program and trivial short-circuit
// before any scoring, so their Scores are nil.
func classifyLevel(text string, contextSize int) (domain.ComplexityLevel, float64, *domain.Scores) {
	if anyMatch(programPatterns, text) {
		return domain.LevelProgram, ConfidenceProgram, nil
	}
	if anyMatch(trivialPatterns, text) {
		return domain.LevelTrivial, ConfidenceTrivial, nil
	}

	scores := &domain.Scores{
		VeryComplex: countMatches(veryComplexPatterns, text),
		Complex:     countMatches(complexPatterns, text),
		Medium:      countMatches(mediumPatterns, text),
		Repetitive:  anyMatch(repetitivePatterns, text),
	}
	scores.Total = scores.VeryComplex*WeightVeryComplex +
		scores.Complex*WeightComplex +
		scores.Medium*WeightMedium

	switch {
	case scores.Total >= ThresholdVeryComplex:
		return domain.LevelVeryComplex, ConfidenceVeryComplex, scores
	case scores.Total >= ThresholdComplex:
		return domain.LevelComplex, ConfidenceComplex, scores
	case scores.Total >= ThresholdMedium:
		// The same small edit repeated over a large context is templated work.
		if scores.Repetitive && contextSize > constants.RepetitiveDowngradeContext {
			return domain.LevelSimple, ConfidenceRepetitive, scores
		}
		return domain.LevelMedium, ConfidenceMedium, scores
	default:
		return domain.LevelSimple, ConfidenceSimple, scores
	}
}
