package driven

import "github.com/custodia-labs/sercha-jobs/internal/core/domain"

// AIConfigValidator validates AI provider configurations by testing
// connectivity to the underlying services. Each method returns nil when
// the provider is not configured.
type AIConfigValidator interface {
	ValidateEmbedding(config *domain.EmbeddingSettings) error
	ValidateLLM(config *domain.LLMSettings) error
	ValidateReranker(config *domain.RerankerSettings) error
}
