package abtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskrouter/internal/domain"
	trerrors "github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func sampleRecords() []domain.ABRecord {
	return []domain.ABRecord{
		{
			Timestamp: "2026-02-10T10:00:00Z", Task: "a",
			ABGroup: domain.ABGroupControl, ClassificationMethod: domain.MethodRules,
			RulesLevel: domain.LevelSimple, RulesConfidence: 0.75, FinalLevel: domain.LevelSimple,
		},
		{
			Timestamp: "2026-02-11T10:00:00Z", Task: "b",
			ABGroup: domain.ABGroupTreatment, ClassificationMethod: domain.MethodML,
			RulesLevel: domain.LevelMedium, RulesConfidence: 0.8,
			MLLevel: ptr("complex"), MLConfidence: ptr(0.9), MLMethod: ptr("ml"),
			FinalLevel: domain.LevelComplex,
		},
		{
			Timestamp: "2026-02-12T10:00:00Z", Task: "b",
			ABGroup: domain.ABGroupTreatment, ClassificationMethod: domain.MethodRulesFallback,
			RulesLevel: domain.LevelComplex, RulesConfidence: 0.85,
			MLLevel: ptr("complex"), MLConfidence: ptr(0.6), MLMethod: ptr("fallback_low_conf"),
			FinalLevel: domain.LevelComplex,
		},
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	r := Analyze(sampleRecords())

	assert.False(t, r.Empty())
	assert.Equal(t, 3, r.TotalRecords)
	assert.Equal(t, 2, r.UniqueTasks)
	assert.Equal(t, "2026-02-10", r.From)
	assert.Equal(t, "2026-02-12", r.To)

	assert.Equal(t, []Count{{"treatment", 2}, {"control", 1}}, r.Groups)
	assert.Equal(t, []Count{{"complex", 2}, {"simple", 1}}, r.FinalLevels)
	assert.Len(t, r.Methods, 3)

	assert.Equal(t, 2, r.MLCalls)
	assert.InDelta(t, 0.5, r.MLDirectRate, 1e-9)
	assert.Equal(t, 1, r.MLFallbacks)
	assert.InDelta(t, 0.5, r.Agreement, 1e-9)

	require.Len(t, r.Disagreements, 1)
	assert.Equal(t, Disagreement{
		Task: "b", RulesLevel: "medium", MLLevel: "complex", FinalLevel: "complex",
		MLConfidence: 0.9, RulesConfidence: 0.8,
	}, r.Disagreements[0])

	assert.Equal(t, ConfidenceStats{Count: 3, Avg: 0.8, Min: 0.75, Max: 0.85}, r.RulesConfidence)
	assert.Equal(t, ConfidenceStats{Count: 2, Avg: 0.75, Min: 0.6, Max: 0.9}, r.MLConfidence)

	require.Len(t, r.Recommendations, 1)
	assert.Contains(t, r.Recommendations[0], "Only 2 ML records")
}

func TestAnalyze_Empty(t *testing.T) {
	t.Parallel()

	r := Analyze(nil)
	assert.True(t, r.Empty())
	assert.Zero(t, r.MLCalls)
	require.Len(t, r.Recommendations, 1)
	assert.Contains(t, r.Recommendations[0], "Only 0 ML records")
}

func TestAnalyze_CapsDisagreements(t *testing.T) {
	t.Parallel()

	var records []domain.ABRecord
	for i := 0; i < 25; i++ {
		records = append(records, domain.ABRecord{
			Timestamp: "2026-02-10T10:00:00Z", Task: "t",
			RulesLevel: domain.LevelSimple, RulesConfidence: 0.75,
			MLLevel: ptr("complex"), MLConfidence: ptr(0.9), MLMethod: ptr("ml"),
		})
	}
	r := Analyze(records)
	assert.Len(t, r.Disagreements, MaxDisagreements)
	assert.InDelta(t, 0.0, r.Agreement, 1e-9)
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	recs := recommendations(25, 0.8, 0.9, 0.95)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "0.7-0.8")

	recs = recommendations(15, 0.6, 0.2, 0.4)
	require.Len(t, recs, 4)
	assert.Contains(t, recs[0], "Only 15 ML records")
	assert.Contains(t, recs[1], "60.0%")
	assert.Contains(t, recs[2], "20%")
	assert.Contains(t, recs[3], "Low ML/rules agreement (40%)")

	recs = recommendations(25, 0.8, 0.5, 0.7)
	assert.Equal(t, []string{"The router is stable. Keep collecting data."}, recs)
}

func TestLoadRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ab.jsonl")
	testutil.WriteLines(t, path,
		`{"timestamp":"2026-02-10T10:00:00Z","task":"old","abGroup":"control","rulesLevel":"simple","finalLevel":"simple"}`,
		``,
		`{not json`,
		`{"timestamp":"2026-02-13T00:00:00Z","task":"boundary","abGroup":"control","rulesLevel":"simple","finalLevel":"simple"}`,
		`{"timestamp":"2026-02-14T09:00:00Z","task":"new","abGroup":"treatment","rulesLevel":"medium","mlLevel":"medium","mlConfidence":0.9,"mlMethod":"ml","finalLevel":"medium"}`,
	)

	all, skipped, err := LoadRecords(path, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 1, skipped)

	recent, _, err := LoadRecords(path, "2026-02-13")
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "boundary", recent[0].Task)
	require.NotNil(t, recent[1].MLLevel)
	assert.Equal(t, "medium", *recent[1].MLLevel)
}

func TestLoadRecords_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := LoadRecords(filepath.Join(t.TempDir(), "missing.jsonl"), "")
	require.ErrorIs(t, err, trerrors.ErrLogNotFound)

	_, _, err = LoadRecords("irrelevant", "13/02/2026")
	require.ErrorIs(t, err, trerrors.ErrInvalidDate)
}
