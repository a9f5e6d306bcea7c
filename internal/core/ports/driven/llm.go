package driven

import "context"

// LLMService provides language model completions.
// It is optional: when nil, the LLM metadata extractor cannot be selected.
//
// Implementations may include:
//   - OpenAI and OpenAI-compatible servers (LM Studio, vLLM)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a completion for a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// System is an optional system prompt.
	System string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// JSON asks the model for a JSON object response where supported.
	JSON bool
}
