package domain

// ABGroup is the sampling bucket a call landed in.
type ABGroup string

// A/B groups.
const (
	// ABGroupControl calls were not sampled; ML only runs on low rule confidence.
	ABGroupControl ABGroup = "control"

	// ABGroupTreatment calls were sampled and always consult ML.
	ABGroupTreatment ABGroup = "treatment"
)

// ABRecord is one line of the append-only A/B log.
// ML fields are nil when the ML classifier was not consulted or gave no answer.
type ABRecord struct {
	ID                   string          `json:"id,omitempty"`
	Timestamp            string          `json:"timestamp"`
	Task                 string          `json:"task"`
	ABGroup              ABGroup         `json:"abGroup"`
	ClassificationMethod Method          `json:"classificationMethod"`
	RulesLevel           ComplexityLevel `json:"rulesLevel"`
	RulesConfidence      float64         `json:"rulesConfidence"`
	MLLevel              *string         `json:"mlLevel"`
	MLConfidence         *float64        `json:"mlConfidence"`
	MLMethod             *string         `json:"mlMethod"`
	FinalLevel           ComplexityLevel `json:"finalLevel"`
}
