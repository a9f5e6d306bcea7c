package ai

import (
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks that configured AI providers answer.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding pings the embedding provider.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(config)
}

// ValidateLLM pings the LLM provider.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	return ValidateLLMConfig(config)
}

// ValidateReranker sends a one-document rerank request.
func (v *ConfigValidator) ValidateReranker(config *domain.RerankerSettings) error {
	return ValidateRerankerConfig(config)
}
