package pipeline

import "github.com/mrz1836/taskrouter/internal/domain"

// Pipeline names.
const (
	NameProgram      = "program"
	NameTrivial      = "trivial"
	NameSimpleSmall  = "simple_small"
	NameSimpleLarge  = "simple_large"
	NameMediumSmall  = "medium_small"
	NameMediumLarge  = "medium_large"
	NameComplexSmall = "complex_small"
	NameComplexLarge = "complex_large"
	NameVeryComplex  = "very_complex"
)

func stage(model domain.ModelTier, role domain.Role, desc string) domain.PipelineStage {
	return domain.PipelineStage{Model: model, Role: role, Description: desc}
}

// table returns a fresh copy of the named pipeline so callers may modify it.
// Unknown names yield nil.
func table(name string) domain.Pipeline {
	switch name {
	case NameProgram:
		return domain.Pipeline{
			stage(domain.TierScript, domain.RoleDirect, "Run a local tool; no model call"),
		}
	case NameTrivial:
		return domain.Pipeline{
			stage(domain.TierFlash, domain.RoleDirect, "Apply the one-line edit"),
		}
	case NameSimpleSmall:
		return domain.Pipeline{
			stage(domain.TierFlash, domain.RoleDirect, "Make the change directly"),
		}
	case NameSimpleLarge:
		return domain.Pipeline{
			stage(domain.TierPro, domain.RoleGatherer, "Read the affected files and list every edit site"),
			stage(domain.TierFlash, domain.RoleExecutor, "Write the edit once as a template"),
			stage(domain.TierScript, domain.RoleApplicator, "Apply the template to every edit site"),
		}
	case NameMediumSmall:
		return domain.Pipeline{
			stage(domain.TierOpus, domain.RoleClassifier, "Confirm scope and acceptance criteria"),
			stage(domain.TierFlash, domain.RoleExecutor, "Implement the change"),
			stage(domain.TierPro, domain.RoleReviewer, "Review the diff"),
			stage(domain.TierOpus, domain.RoleVerifier, "Verify against the acceptance criteria"),
		}
	case NameMediumLarge:
		return domain.Pipeline{
			stage(domain.TierPro, domain.RoleGatherer, "Condense the large context into a brief"),
			stage(domain.TierOpus, domain.RoleClassifier, "Confirm scope and acceptance criteria"),
			stage(domain.TierPro, domain.RoleExecutor, "Implement the change"),
			stage(domain.TierSonnet, domain.RoleReviewer, "Review the diff"),
			stage(domain.TierOpus, domain.RoleVerifier, "Verify against the acceptance criteria"),
		}
	case NameComplexSmall:
		return domain.Pipeline{
			stage(domain.TierOpus, domain.RoleDirect, "Handle the whole task with the strongest model"),
		}
	case NameComplexLarge:
		return domain.Pipeline{
			stage(domain.TierPro, domain.RoleGatherer, "Condense the large context into a brief"),
			stage(domain.TierOpus, domain.RoleDesigner, "Design the change from the brief"),
			stage(domain.TierSonnet, domain.RoleExecutor, "Implement the design"),
			stage(domain.TierPro, domain.RoleReviewer, "Review the diff"),
			stage(domain.TierOpus, domain.RoleVerifier, "Verify the result against the design"),
		}
	case NameVeryComplex:
		return domain.Pipeline{
			stage(domain.TierPro, domain.RoleGatherer, "Map the whole system into a brief"),
			stage(domain.TierOpus, domain.RoleDesigner, "Design the target architecture and a step plan"),
			stage(domain.TierSonnet, domain.RoleExecutor, "Implement the plan step by step"),
			stage(domain.TierSonnet, domain.RoleReviewer, "Review each step"),
			stage(domain.TierOpus, domain.RoleVerifier, "Verify the system against the design"),
			stage(domain.TierScript, domain.RoleApplicator, "Apply and format the generated changes"),
		}
	default:
		return nil
	}
}

// Names lists every pipeline name.
func Names() []string {
	return []string{
		NameProgram, NameTrivial,
		NameSimpleSmall, NameSimpleLarge,
		NameMediumSmall, NameMediumLarge,
		NameComplexSmall, NameComplexLarge,
		NameVeryComplex,
	}
}
