package domain

// Method names how the final level was decided.
type Method string

// Classification methods.
const (
	// MethodRules means the rule-based level was used and ML was not consulted.
	MethodRules Method = "rules"

	// MethodML means the ML classifier's level overrode the rules.
	MethodML Method = "ml"

	// MethodRulesFallback means ML was consulted but gave no usable answer.
	MethodRulesFallback Method = "rules_fallback"
)

// String returns the string representation of the method.
func (m Method) String() string {
	return string(m)
}

// Scores records how the rule-based classifier arrived at its level.
type Scores struct {
	Total       int  `json:"total"`
	VeryComplex int  `json:"veryComplex"`
	Complex     int  `json:"complex"`
	Medium      int  `json:"medium"`
	Repetitive  bool `json:"repetitive"`
}

// ClassificationResult is the routing answer for one task description.
// It is produced and consumed within a single call and never persisted.
//
// Example JSON representation:
//
//	{
//	    "level": "complex",
//	    "confidence": 0.85,
//	    "pipelineName": "complex_small",
//	    "pipeline": [{"model": "opus", "role": "direct", "description": "..."}],
//	    "contextSize": 60000,
//	    "criticality": "high",
//	    "estimatedCost": 1.8,
//	    "baselineCost": 1.8,
//	    "savingsPercent": 0,
//	    "method": "rules"
//	}
type ClassificationResult struct {
	Level        ComplexityLevel `json:"level"`
	Confidence   float64         `json:"confidence"`
	PipelineName string          `json:"pipelineName"`
	Pipeline     Pipeline        `json:"pipeline"`
	ContextSize  int             `json:"contextSize"`
	Criticality  Criticality     `json:"criticality"`

	// EstimatedCost is advisory USD per run, not billing data.
	EstimatedCost float64 `json:"estimatedCost"`

	// BaselineCost is the cost of sending everything to a single opus stage.
	BaselineCost   float64 `json:"baselineCost"`
	SavingsPercent float64 `json:"savingsPercent"`

	// ProgramSuggestion is only set for program-level tasks, best effort.
	ProgramSuggestion string `json:"programSuggestion,omitempty"`

	Method Method  `json:"method"`
	Scores *Scores `json:"scores,omitempty"`
}

// MLClassification is the JSON object printed by the external ML classifier.
type MLClassification struct {
	Complexity string  `json:"complexity"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`

	// Prediction is the raw model label when the script fell back to its own rules.
	Prediction string `json:"ml_prediction,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}
