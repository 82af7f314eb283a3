package abtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/taskrouter/internal/ai"
	"github.com/mrz1836/taskrouter/internal/classifier"
	"github.com/mrz1836/taskrouter/internal/clock"
	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/domain"
	trerrors "github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/logging"
)

// Harness decides whether to consult the ML classifier for a request and
// which answer wins. It is safe for concurrent use as long as its Sampler,
// MLClassifier and Recorder are.
type Harness struct {
	rules    *classifier.Classifier
	ml       ai.MLClassifier
	sampler  Sampler
	recorder Recorder
	clock    clock.Clock
	newID    func() string
	logger   zerolog.Logger

	ratio         float64
	mlThreshold   float64
	lowConfidence float64
}

// Option configures a Harness.
type Option func(*Harness)

// WithML sets the ML classifier. Without one, ML is never consulted.
func WithML(ml ai.MLClassifier) Option {
	return func(h *Harness) { h.ml = ml }
}

// WithSampler sets the random source. Nil is ignored.
func WithSampler(s Sampler) Option {
	return func(h *Harness) {
		if s != nil {
			h.sampler = s
		}
	}
}

// WithRecorder sets where records go. Nil discards them.
func WithRecorder(r Recorder) Option {
	return func(h *Harness) {
		if r == nil {
			r = NopRecorder{}
		}
		h.recorder = r
	}
}

// WithClock sets the clock used for record timestamps.
func WithClock(c clock.Clock) Option {
	return func(h *Harness) {
		if c != nil {
			h.clock = c
		}
	}
}

// WithIDGenerator replaces the UUID generator for record ids.
func WithIDGenerator(fn func() string) Option {
	return func(h *Harness) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// WithRatio sets the share of calls sampled into the treatment group.
func WithRatio(ratio float64) Option {
	return func(h *Harness) { h.ratio = ratio }
}

// WithMLConfidenceThreshold sets the ML confidence needed to override rules.
func WithMLConfidenceThreshold(threshold float64) Option {
	return func(h *Harness) { h.mlThreshold = threshold }
}

// WithLowConfidenceTrigger consults ML whenever rules are less confident than trigger.
func WithLowConfidenceTrigger(trigger float64) Option {
	return func(h *Harness) { h.lowConfidence = trigger }
}

// Disabled turns off ML entirely: nothing is sampled and no confidence is low
// enough to trigger a call.
func Disabled() Option {
	return func(h *Harness) {
		h.ratio = 0
		h.lowConfidence = 0
	}
}

// New creates a Harness around a rules classifier. A nil classifier gets the defaults.
func New(rules *classifier.Classifier, opts ...Option) *Harness {
	if rules == nil {
		rules = classifier.New()
	}
	h := &Harness{
		rules:         rules,
		sampler:       DefaultSampler(),
		recorder:      NopRecorder{},
		clock:         clock.RealClock{},
		newID:         uuid.NewString,
		logger:        zerolog.Nop(),
		ratio:         constants.DefaultABRatio,
		mlThreshold:   constants.DefaultMLConfidenceThreshold,
		lowConfidence: constants.DefaultLowConfidenceTrigger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Decision is the outcome of one routed request.
type Decision struct {
	// Result is the final classification returned to the caller.
	Result domain.ClassificationResult

	// Rules is the rule-based result, which is computed on every call.
	Rules domain.ClassificationResult

	Group domain.ABGroup

	// ML is the ML answer when one was received, even if it did not win.
	ML *domain.MLClassification

	// MLErr explains why ML did not win when it was consulted.
	MLErr error

	// Record is what was handed to the Recorder.
	Record domain.ABRecord
}

// Route classifies text, consults ML when sampled or when rules are unsure,
// and records the outcome. It never fails: ML and logging problems degrade to
// the rules answer.
func (h *Harness) Route(ctx context.Context, text string) Decision {
	rules := h.rules.Classify(text)

	group := domain.ABGroupControl
	sampled := h.sampler.Float64() < h.ratio
	if sampled {
		group = domain.ABGroupTreatment
	}

	d := Decision{Result: rules, Rules: rules, Group: group}

	lowConfidence := rules.Confidence < h.lowConfidence
	if h.ml != nil && (sampled || lowConfidence) {
		h.consultML(ctx, text, &d)
	}

	d.Record = h.buildRecord(text, &d)
	if err := h.recorder.Record(ctx, d.Record); err != nil {
		h.logger.Debug().Err(err).Msg("ab record not written")
	}

	h.logger.Debug().
		Str("group", string(group)).
		Str("method", d.Result.Method.String()).
		Str("rules_level", rules.Level.String()).
		Str("final_level", d.Result.Level.String()).
		Msg("request routed")

	return d
}

func (h *Harness) consultML(ctx context.Context, text string, d *Decision) {
	d.Result.Method = domain.MethodRulesFallback

	ml, err := h.ml.Classify(ctx, text)
	if err != nil {
		if !errors.Is(err, trerrors.ErrMLUnavailable) {
			err = fmt.Errorf("%w: %w", trerrors.ErrMLUnavailable, err)
		}
		d.MLErr = err
		h.logger.Debug().Err(err).Msg("ml classifier unavailable, using rules")
		return
	}
	d.ML = ml

	if err := usableAnswer(ml); err != nil {
		d.MLErr = err
		h.logger.Debug().Err(err).Msg("ml answer rejected, using rules")
		return
	}
	level, _ := domain.ParseComplexityLevel(ml.Complexity)
	if ml.Confidence < h.mlThreshold {
		d.MLErr = fmt.Errorf("%w: %.2f < %.2f", trerrors.ErrMLLowConfidence, ml.Confidence, h.mlThreshold)
		return
	}

	res := h.rules.Complete(level, ml.Confidence, d.Rules.ContextSize, d.Rules.Criticality)
	res.Method = domain.MethodML
	res.Scores = d.Rules.Scores
	if level == domain.LevelProgram {
		res.ProgramSuggestion = classifier.SuggestProgram(text)
	}
	d.Result = res
}

// usableAnswer reports why an ML answer cannot override the rules. Such
// answers are still logged so fallbacks show up in the A/B report.
func usableAnswer(ml *domain.MLClassification) error {
	if ml.Error != "" {
		return fmt.Errorf("%w: %s", trerrors.ErrMLUnavailable, ml.Error)
	}
	if _, err := domain.ParseComplexityLevel(ml.Complexity); err != nil {
		return fmt.Errorf("%w: %w", trerrors.ErrMLUnavailable, err)
	}
	if ml.Confidence < 0 || ml.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v out of range", trerrors.ErrMLUnavailable, ml.Confidence)
	}
	return nil
}

func (h *Harness) buildRecord(text string, d *Decision) domain.ABRecord {
	rec := domain.ABRecord{
		ID:                   h.newID(),
		Timestamp:            clock.Timestamp(h.clock),
		Task:                 logging.SafeTask(text, constants.LogTaskMaxRunes),
		ABGroup:              d.Group,
		ClassificationMethod: d.Result.Method,
		RulesLevel:           d.Rules.Level,
		RulesConfidence:      d.Rules.Confidence,
		FinalLevel:           d.Result.Level,
	}
	if d.ML != nil {
		level, conf, method := d.ML.Complexity, d.ML.Confidence, d.ML.Method
		rec.MLLevel = &level
		rec.MLConfidence = &conf
		rec.MLMethod = &method
	}
	return rec
}
