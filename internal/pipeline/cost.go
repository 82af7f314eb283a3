package pipeline

import (
	"math"

	"github.com/mrz1836/taskrouter/internal/domain"
)

// Price is USD per one million tokens.
type Price struct {
	Input  float64
	Output float64
}

// PriceFor returns the list price for a tier. Script and unknown tiers are free.
func PriceFor(tier domain.ModelTier) Price {
	switch tier {
	case domain.TierFlash:
		return Price{Input: 0.50, Output: 3.00}
	case domain.TierPro:
		return Price{Input: 2.00, Output: 12.00}
	case domain.TierSonnet:
		return Price{Input: 3.00, Output: 15.00}
	case domain.TierOpus:
		return Price{Input: 15.00, Output: 75.00}
	default:
		return Price{}
	}
}

// Token budgets per role.
const (
	classifierInputTokens  = 200
	classifierOutputTokens = 50

	executorInputCap  = 200000
	executorOutputCap = 8000

	directInputCap  = 400000
	directOutputCap = 16000

	reviewerInputCap     = 100000
	reviewerOutputTokens = 1000

	verifierInputCap     = 50000
	verifierOutputTokens = 500

	gathererOutputCap = 4000

	designerExtraInput   = 1000
	designerOutputTokens = 3000

	applicatorCap = 20000
)

// TokenBudget returns the input and output tokens a role spends for a given
// context size. Every budget is non-decreasing in contextSize.
func TokenBudget(role domain.Role, contextSize int) (input, output int) {
	c := max(contextSize, 0)

	switch role {
	case domain.RoleClassifier:
		return classifierInputTokens, classifierOutputTokens
	case domain.RoleExecutor:
		return min(c, executorInputCap), min(c/10, executorOutputCap)
	case domain.RoleDirect:
		return min(c, directInputCap), min(c/8, directOutputCap)
	case domain.RoleReviewer:
		return min(c/2, reviewerInputCap), reviewerOutputTokens
	case domain.RoleVerifier:
		return min(c/4, verifierInputCap), verifierOutputTokens
	case domain.RoleGatherer:
		return c, min(c/20, gathererOutputCap)
	case domain.RoleDesigner:
		// The designer reads the gatherer's brief, not the raw context.
		return min(c/20, gathererOutputCap) + designerExtraInput, designerOutputTokens
	case domain.RoleApplicator:
		return min(c/10, applicatorCap), min(c/10, applicatorCap)
	default:
		return 0, 0
	}
}

// StageCost returns the USD cost of a single stage.
func StageCost(s domain.PipelineStage, contextSize int) float64 {
	in, out := TokenBudget(s.Role, contextSize)
	price := PriceFor(s.Model)
	return (float64(in)*price.Input + float64(out)*price.Output) / 1_000_000
}

// EstimateCost returns the advisory USD cost of running p once, rounded to
// one millionth of a dollar.
func EstimateCost(p domain.Pipeline, contextSize int) float64 {
	total := 0.0
	for _, s := range p {
		total += StageCost(s, contextSize)
	}
	return RoundCost(total)
}

// BaselineCost is the cost of sending the whole task to one opus stage.
func BaselineCost(contextSize int) float64 {
	return EstimateCost(domain.Pipeline{
		{Model: domain.TierOpus, Role: domain.RoleDirect},
	}, contextSize)
}

// RoundCost rounds a dollar amount to a millionth of a dollar.
func RoundCost(v float64) float64 {
	return math.Round(v*1_000_000) / 1_000_000
}
