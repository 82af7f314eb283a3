package classifier

import "github.com/mrz1836/taskrouter/internal/domain"

// DetectCriticality rates how much damage a mistake in this task could do.
// The first matching level wins, checked from critical down; the default is low.
func DetectCriticality(text string) domain.Criticality {
	return detectCriticality(normalize(text))
}

func detectCriticality(text string) domain.Criticality {
	switch {
	case anyMatch(criticalPatterns, text):
		return domain.CriticalityCritical
	case anyMatch(highPatterns, text):
		return domain.CriticalityHigh
	case anyMatch(mediumCriticalityPatterns, text):
		return domain.CriticalityMedium
	default:
		return domain.CriticalityLow
	}
}
