package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptExtractSystem is the system prompt of the LLM metadata extractor.
	// It has no format placeholders.
	PromptExtractSystem = "extract_system"

	// PromptExtractMetadata is the extraction request. It expects a single %s
	// placeholder for the cleaned posting text.
	PromptExtractMetadata = "extract_metadata"
)
