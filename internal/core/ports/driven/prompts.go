package driven

// PromptStore provides access to generative prompt templates.
// Implementations may load prompts from user-editable files or embed
// them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Implementations should fall back to a sensible embedded default
	// if no customised prompt exists.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptClinicalAnswer is the instruction block for answering dashboard
	// questions from clinical records. The template expects %s placeholders
	// for the retrieved context and the question, in that order.
	PromptClinicalAnswer = "clinical_answer"
)
