package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/mrz1836/taskrouter/internal/abtest"
	"github.com/mrz1836/taskrouter/internal/ai"
	"github.com/mrz1836/taskrouter/internal/classifier"
	"github.com/mrz1836/taskrouter/internal/config"
	"github.com/mrz1836/taskrouter/internal/pipeline"
)

// formRunner is the part of huh.Form the commands use.
type formRunner interface {
	Run() error
}

var _ formRunner = (*huh.Form)(nil)

// deps are the collaborators commands are built from. Tests swap them to
// avoid touching the home directory or spawning the ML subprocess.
// isTerminal looks at stdin and gates the config form; stderrIsTerminal
// gates the batch progress bar.
type deps struct {
	initLogger       func(verbose, quiet bool) zerolog.Logger
	loadConfig       func(ctx context.Context) (*config.Config, error)
	newML            func(cfg *config.MLConfig, logger zerolog.Logger) ai.MLClassifier
	sampler          abtest.Sampler
	stdin            io.Reader
	isTerminal       func() bool
	stderrIsTerminal func() bool
	newForm          func(cfg *config.Config, ratio, timeout *string) formRunner
}

func defaultDeps() *deps {
	return &deps{
		initLogger: InitLogger,
		loadConfig: config.Load,
		newML: func(cfg *config.MLConfig, logger zerolog.Logger) ai.MLClassifier {
			return ai.NewSubprocessClassifier(cfg, ai.WithLogger(logger))
		},
		stdin:            os.Stdin,
		isTerminal:       func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		stderrIsTerminal: func() bool { return term.IsTerminal(int(os.Stderr.Fd())) },
		newForm:          newConfigForm,
	}
}

// newRulesClassifier builds the rules classifier from the router section.
func newRulesClassifier(cfg *config.Config, logger zerolog.Logger) *classifier.Classifier {
	gen := pipeline.NewGenerator(pipeline.WithLargeContextThreshold(cfg.Router.LargeContextThreshold))
	return classifier.New(classifier.WithGenerator(gen), classifier.WithLogger(logger))
}

// newHarness wires the rules classifier, the ML subprocess and the A/B log
// according to cfg. With noAB or a disabled harness the ML classifier is never
// consulted, but every call is still recorded.
func (d *deps) newHarness(cfg *config.Config, noAB bool, logger zerolog.Logger) (*abtest.Harness, error) {
	logPath, err := cfg.ABTest.ResolveLogPath()
	if err != nil {
		return nil, err
	}

	opts := []abtest.Option{
		abtest.WithLogger(logger),
		abtest.WithRecorder(abtest.NewFileSink(logPath)),
		abtest.WithSampler(d.sampler),
		abtest.WithRatio(cfg.ABTest.Ratio),
		abtest.WithMLConfidenceThreshold(cfg.ABTest.MLConfidenceThreshold),
		abtest.WithLowConfidenceTrigger(cfg.ABTest.LowConfidenceTrigger),
	}
	if noAB || !cfg.ABTest.Enabled {
		opts = append(opts, abtest.Disabled())
	} else {
		opts = append(opts, abtest.WithML(d.newML(&cfg.ML, logger)))
	}

	return abtest.New(newRulesClassifier(cfg, logger), opts...), nil
}
