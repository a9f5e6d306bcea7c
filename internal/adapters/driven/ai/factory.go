// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/sercha-jobs/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/sercha-jobs/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/custodia-labs/sercha-jobs/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/sercha-jobs/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/reranker"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Services holds the AI adapters built from one configuration.
type Services struct {
	Embedding driven.EmbeddingService

	// LLM is nil when no [llm] provider is configured.
	LLM driven.LLMService

	// Reranker is nil when no reranker URL is configured.
	Reranker driven.Reranker
}

// Close releases all resources held by the services.
func (s *Services) Close() {
	if s.Embedding != nil {
		s.Embedding.Close()
	}
	if s.LLM != nil {
		s.LLM.Close()
	}
}

// NewServices creates every AI adapter the configuration asks for.
// Embedding is mandatory; LLM and reranker are optional.
func NewServices(cfg domain.Config) (*Services, error) {
	embedding, err := CreateEmbeddingService(&cfg.Embedding)
	if err != nil {
		return nil, err
	}
	if embedding == nil {
		return nil, fmt.Errorf("%w: embedding provider %q is not configured", domain.ErrInvalidConfig, cfg.Embedding.Provider)
	}

	svcs := &Services{Embedding: embedding}

	if svcs.LLM, err = CreateLLMService(&cfg.LLM); err != nil {
		svcs.Close()
		return nil, err
	}

	if svcs.Reranker, err = CreateReranker(&cfg.Reranker); err != nil {
		svcs.Close()
		return nil, err
	}

	logger.Debug("ai services: embedding=%s llm=%v reranker=%v",
		embedding.ModelName(), svcs.LLM != nil, svcs.Reranker != nil)
	return svcs, nil
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider: %s", domain.ErrInvalidConfig, settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", domain.ErrInvalidConfig, settings.Provider)
	}
}

// CreateReranker creates the HTTP reranker. Returns nil if no URL is set.
func CreateReranker(settings *domain.RerankerSettings) (driven.Reranker, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	return reranker.New(reranker.Config{
		URL:      settings.URL,
		Model:    settings.Model,
		APIKey:   settings.APIKey,
		Timeout:  settings.Timeout.Std(),
		MaxChars: settings.MaxChars,
	})
}

// ValidateEmbeddingConfig creates an embedding service and pings it.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateLLMConfig creates an LLM service and pings it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateRerankerConfig scores one short document. Rerank servers have no
// common health endpoint.
func ValidateRerankerConfig(settings *domain.RerankerSettings) error {
	rr, err := CreateReranker(settings)
	if err != nil || rr == nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	_, err = rr.Score(ctx, "ping", []string{"ping"})
	return err
}
