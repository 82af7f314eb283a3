package domain

// ModelTier is a class of backing model or service with its own cost profile.
type ModelTier string

// Model tiers, cheapest first.
const (
	// TierScript runs a local program; it costs nothing.
	TierScript ModelTier = "script"
	TierFlash  ModelTier = "flash"
	TierPro    ModelTier = "pro"
	TierSonnet ModelTier = "sonnet"
	TierOpus   ModelTier = "opus"
)

// String returns the string representation of the tier.
func (t ModelTier) String() string {
	return string(t)
}

// Role is the job a pipeline stage performs.
type Role string

// Pipeline stage roles.
const (
	RoleClassifier Role = "classifier"
	RoleExecutor   Role = "executor"
	RoleReviewer   Role = "reviewer"
	RoleVerifier   Role = "verifier"
	RoleApplicator Role = "applicator"
	RoleDirect     Role = "direct"
	// RoleGatherer reads the full context and condenses it into a brief.
	RoleGatherer Role = "gatherer"
	// RoleDesigner plans the change from the gatherer's brief.
	RoleDesigner Role = "designer"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// PipelineStage is one step of a pipeline.
type PipelineStage struct {
	Model       ModelTier `json:"model" yaml:"model"`
	Role        Role      `json:"role" yaml:"role"`
	Description string    `json:"description" yaml:"description"`
}

// Pipeline is an ordered sequence of stages.
type Pipeline []PipelineStage

// Has reports whether any stage performs role.
func (p Pipeline) Has(role Role) bool {
	for _, s := range p {
		if s.Role == role {
			return true
		}
	}
	return false
}

// Models returns the model tier of each stage, in order.
func (p Pipeline) Models() []ModelTier {
	models := make([]ModelTier, len(p))
	for i, s := range p {
		models[i] = s.Model
	}
	return models
}

// Clone returns a copy that can be modified without touching shared tables.
func (p Pipeline) Clone() Pipeline {
	if p == nil {
		return nil
	}
	out := make(Pipeline, len(p))
	copy(out, p)
	return out
}
