package abtest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskrouter/internal/domain"
	"github.com/mrz1836/taskrouter/internal/testutil"
)

func TestFileSink_AppendsLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deep", "dir", "ab_test_log.jsonl")
	sink := NewFileSink(path)
	assert.Equal(t, path, sink.Path())

	level, conf, method := "medium", 0.81, "ml"
	require.NoError(t, sink.Record(context.Background(), domain.ABRecord{
		ID: "a", Timestamp: "2026-02-13T00:00:00Z", Task: "first",
		ABGroup: domain.ABGroupControl, ClassificationMethod: domain.MethodRules,
		RulesLevel: domain.LevelSimple, RulesConfidence: 0.75, FinalLevel: domain.LevelSimple,
	}))
	require.NoError(t, sink.Record(context.Background(), domain.ABRecord{
		ID: "b", Timestamp: "2026-02-13T00:00:01Z", Task: "second",
		ABGroup: domain.ABGroupTreatment, ClassificationMethod: domain.MethodML,
		RulesLevel: domain.LevelSimple, RulesConfidence: 0.75,
		MLLevel: &level, MLConfidence: &conf, MLMethod: &method,
		FinalLevel: domain.LevelMedium,
	}))

	lines := testutil.ReadLines(t, path)
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "first", first["task"])
	assert.Nil(t, first["mlLevel"])
	assert.Contains(t, first, "mlLevel")

	var second domain.ABRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.NotNil(t, second.MLLevel)
	assert.Equal(t, "medium", *second.MLLevel)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileSink_Errors(t *testing.T) {
	t.Parallel()

	// The log path is an existing directory, so opening it for writing fails.
	dir := t.TempDir()
	err := NewFileSink(dir).Record(context.Background(), domain.ABRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open ab log")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewFileSink(filepath.Join(dir, "x.jsonl")).Record(ctx, domain.ABRecord{})
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "x.jsonl"))
}

func TestNopRecorder(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NopRecorder{}.Record(context.Background(), domain.ABRecord{}))
}

func TestSamplers(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.42, FixedSampler(0.42).Float64(), 1e-12)

	s := DefaultSampler()
	for i := 0; i < 100; i++ {
		v := s.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
