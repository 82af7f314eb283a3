package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mrz1836/taskrouter/internal/abtest"
	"github.com/mrz1836/taskrouter/internal/ai"
	"github.com/mrz1836/taskrouter/internal/config"
	"github.com/mrz1836/taskrouter/internal/domain"
)

// mockFormRunner stands in for a huh form. onRun simulates user input.
type mockFormRunner struct {
	runErr error
	onRun  func()
}

func (m *mockFormRunner) Run() error {
	if m.onRun != nil {
		m.onRun()
	}
	return m.runErr
}

// stubML answers every call with the same classification.
type stubML struct {
	answer domain.MLClassification
	err    error
	calls  atomic.Int32
}

func (s *stubML) Classify(context.Context, string) (*domain.MLClassification, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	a := s.answer
	return &a, nil
}

// testEnv is a set of deps that never touch the home directory or spawn a process.
type testEnv struct {
	deps    *deps
	cfg     *config.Config
	ml      *stubML
	logPath string
	mlBuilt atomic.Int32
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		cfg:     config.DefaultConfig(),
		ml:      &stubML{answer: domain.MLClassification{Complexity: "medium", Confidence: 0.9, Method: "ml"}},
		logPath: filepath.Join(t.TempDir(), "tracking", "ab.jsonl"),
	}
	env.cfg.ABTest.LogPath = env.logPath

	env.deps = &deps{
		initLogger: func(verbose, quiet bool) zerolog.Logger {
			return InitLoggerWithWriter(verbose, quiet, io.Discard)
		},
		loadConfig: func(context.Context) (*config.Config, error) {
			cp := *env.cfg
			return &cp, nil
		},
		newML: func(*config.MLConfig, zerolog.Logger) ai.MLClassifier {
			env.mlBuilt.Add(1)
			return env.ml
		},
		// Nothing is sampled unless a test lowers the draw.
		sampler:          abtest.FixedSampler(0.999),
		stdin:            strings.NewReader(""),
		isTerminal:       func() bool { return false },
		stderrIsTerminal: func() bool { return false },
		newForm: func(*config.Config, *string, *string) formRunner {
			return &mockFormRunner{}
		},
	}
	return env
}

// run executes the root command with args and returns stdout and stderr.
func (e *testEnv) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmdWithDeps(&GlobalFlags{}, BuildInfo{Version: "test"}, e.deps)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
