package classifier

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/taskrouter/internal/domain"
	"github.com/mrz1836/taskrouter/internal/pipeline"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := New()

	tests := []struct {
		name       string
		text       string
		level      domain.ComplexityLevel
		confidence float64
	}{
		{"run tests is a program task", "Запусти тесты", domain.LevelProgram, ConfidenceProgram},
		{"eslint is a program task", "run eslint on src", domain.LevelProgram, ConfidenceProgram},
		{"git status is a program task", "git status", domain.LevelProgram, ConfidenceProgram},
		{"report is a program task", "Покажи статистику", domain.LevelProgram, ConfidenceProgram},
		{"russian typo", "Исправь опечатку в README", domain.LevelTrivial, ConfidenceTrivial},
		{"english typo", "Fix typo in README", domain.LevelTrivial, ConfidenceTrivial},
		{"security review", "Проверь безопасность auth модуля, 3-5 файлов", domain.LevelComplex, ConfidenceComplex},
		{"microservices rewrite", "Переписать всю систему на микросервисы", domain.LevelVeryComplex, ConfidenceVeryComplex},
		{"distributed design", "Design a distributed event-driven architecture", domain.LevelVeryComplex, ConfidenceVeryComplex},
		{"new endpoint", "Добавить новый API endpoint для профиля", domain.LevelMedium, ConfidenceMedium},
		{"logging in one module stays medium", "Добавить логирование в модуль оплаты", domain.LevelMedium, ConfidenceMedium},
		{"repetitive logging over many files", "Добавить логирование во все модули, 20+ файлов", domain.LevelSimple, ConfidenceRepetitive},
		{"no signal", "Hello", domain.LevelSimple, ConfidenceSimple},
		{"empty", "", domain.LevelSimple, ConfidenceSimple},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := c.Classify(tc.text)
			assert.Equal(t, tc.level, res.Level)
			assert.InDelta(t, tc.confidence, res.Confidence, 1e-9)
			assert.Equal(t, domain.MethodRules, res.Method)
			assert.NotEmpty(t, res.Pipeline)
			assert.GreaterOrEqual(t, res.Confidence, 0.0)
			assert.LessOrEqual(t, res.Confidence, 1.0)
		})
	}
}

func TestClassifier_ShortCircuitPrecedence(t *testing.T) {
	t.Parallel()

	c := New()

	tests := []struct {
		name       string
		text       string
		level      domain.ComplexityLevel
		confidence float64
		// also names the pattern tables the text matches besides the winner.
		also map[string][]*regexp.Regexp
	}{
		{
			name:       "program beats very complex and complex",
			text:       "Запусти тесты после рефакторинга архитектуры микросервисов",
			level:      domain.LevelProgram,
			confidence: ConfidenceProgram,
			also:       map[string][]*regexp.Regexp{"very complex": veryComplexPatterns, "complex": complexPatterns},
		},
		{
			name:       "program beats trivial",
			text:       "Run the tests and fix the typo",
			level:      domain.LevelProgram,
			confidence: ConfidenceProgram,
			also:       map[string][]*regexp.Regexp{"trivial": trivialPatterns},
		},
		{
			name:       "program beats a rewrite",
			text:       "Rewrite the entire system from scratch, then run all tests",
			level:      domain.LevelProgram,
			confidence: ConfidenceProgram,
			also:       map[string][]*regexp.Regexp{"very complex": veryComplexPatterns},
		},
		{
			name:       "trivial beats complex",
			text:       "Fix typo in the security audit module",
			level:      domain.LevelTrivial,
			confidence: ConfidenceTrivial,
			also:       map[string][]*regexp.Regexp{"complex": complexPatterns},
		},
		{
			name:       "trivial beats very complex",
			text:       "Исправь опечатку в модуле распределённой архитектуры микросервисов",
			level:      domain.LevelTrivial,
			confidence: ConfidenceTrivial,
			also:       map[string][]*regexp.Regexp{"very complex": veryComplexPatterns, "complex": complexPatterns},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			for table, patterns := range tc.also {
				require.Positive(t, countMatches(patterns, normalize(tc.text)), "expected %s patterns to match", table)
			}

			res := c.Classify(tc.text)
			assert.Equal(t, tc.level, res.Level)
			assert.InDelta(t, tc.confidence, res.Confidence, 1e-9)
			assert.Nil(t, res.Scores)
			assert.Equal(t, domain.MethodRules, res.Method)
		})
	}
}

func TestClassifier_SecurityReviewEndToEnd(t *testing.T) {
	t.Parallel()

	res := New().Classify("Проверь безопасность auth модуля, 3-5 файлов")

	assert.Equal(t, domain.CriticalityHigh, res.Criticality)
	assert.Equal(t, 60000, res.ContextSize)
	assert.Equal(t, domain.LevelComplex, res.Level)
	assert.Equal(t, pipeline.NameComplexSmall, res.PipelineName)
	require.NotNil(t, res.Scores)
	assert.Equal(t, 1, res.Scores.Complex)
	assert.Equal(t, 1, res.Scores.Medium)
	assert.Equal(t, 4, res.Scores.Total)
	assert.Empty(t, res.ProgramSuggestion)
}

func TestClassifier_RepetitiveDowngrade(t *testing.T) {
	t.Parallel()

	res := New().Classify("Добавить логирование во все модули, 20+ файлов")
	require.NotNil(t, res.Scores)
	assert.True(t, res.Scores.Repetitive)
	assert.Equal(t, 600000, res.ContextSize)
	assert.Equal(t, pipeline.NameSimpleLarge, res.PipelineName)
	assert.True(t, res.Pipeline.Has(domain.RoleApplicator))
}

func TestClassifier_ProgramSuggestion(t *testing.T) {
	t.Parallel()

	res := New().Classify("Запусти тесты")
	assert.Equal(t, "pytest -q", res.ProgramSuggestion)
	assert.Nil(t, res.Scores)
	assert.Equal(t, pipeline.NameProgram, res.PipelineName)
	assert.Zero(t, res.EstimatedCost)
	assert.InDelta(t, 100, res.SavingsPercent, 1e-9)
}

func TestClassifier_Idempotent(t *testing.T) {
	t.Parallel()

	c := New()
	for _, text := range []string{
		"Проверь безопасность auth модуля, 3-5 файлов",
		"Добавить логирование во все модули, 20+ файлов",
		"Fix typo in README",
		"",
	} {
		assert.Equal(t, c.Classify(text), c.Classify(text), text)
	}
}

func TestClassifier_NormalizesDecomposedLetters(t *testing.T) {
	t.Parallel()

	// "отчёт" with ё typed as е plus a combining diaeresis.
	res := New().Classify("Покажи отче\u0308т")
	assert.Equal(t, domain.LevelProgram, res.Level)
}

func TestClassifier_WithGenerator(t *testing.T) {
	t.Parallel()

	g := pipeline.NewGenerator(pipeline.WithLargeContextThreshold(50000))
	c := New(WithGenerator(g), WithGenerator(nil))
	assert.Same(t, g, c.Generator())

	res := c.Classify("Проверь безопасность auth модуля, 3-5 файлов")
	assert.Equal(t, pipeline.NameComplexLarge, res.PipelineName)
	assert.True(t, res.Pipeline.Has(domain.RoleGatherer))
}

func TestClassifier_Complete(t *testing.T) {
	t.Parallel()

	res := New().Complete(domain.LevelComplex, 0.9, 150000, domain.CriticalityLow)
	assert.Equal(t, pipeline.NameComplexLarge, res.PipelineName)
	assert.Equal(t, 150000, res.ContextSize)
	assert.Empty(t, res.Method)
	assert.Positive(t, res.EstimatedCost)
}
