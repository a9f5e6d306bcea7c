// Package extractors selects a metadata extractor implementation by name.
package extractors

import (
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/extractors/llm"
	"github.com/custodia-labs/sercha-jobs/internal/extractors/vocabulary"
)

// Dependencies carries the optional services an extractor may need.
type Dependencies struct {
	// LLM is required by the llm extractor and ignored by the others.
	LLM driven.LLMService

	// Timeout bounds each model call. Zero uses the extractor default.
	Timeout time.Duration

	// Prompts overrides the built-in llm extractor prompts. Optional.
	Prompts driven.PromptStore
}

// BuilderFunc creates a MetadataExtractor from its dependencies.
type BuilderFunc func(deps Dependencies) (driven.MetadataExtractor, error)

// Registry maps extractor kinds to their builders.
type Registry struct {
	builders map[domain.ExtractorKind]BuilderFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[domain.ExtractorKind]BuilderFunc),
	}
}

// NewDefaultRegistry creates a registry with the built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// Register adds a builder. A later registration for the same kind replaces the earlier one.
func (r *Registry) Register(kind domain.ExtractorKind, builder BuilderFunc) {
	r.builders[kind] = builder
}

// Build creates the extractor configured for kind.
func (r *Registry) Build(kind domain.ExtractorKind, deps Dependencies) (driven.MetadataExtractor, error) {
	builder, ok := r.builders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown extractor %q: %w", kind, domain.ErrInvalidConfig)
	}
	return builder(deps)
}

// Has returns true if kind is registered.
func (r *Registry) Has(kind domain.ExtractorKind) bool {
	_, ok := r.builders[kind]
	return ok
}

// Names returns the registered kinds in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for kind := range r.builders {
		names = append(names, string(kind))
	}
	sort.Strings(names)
	return names
}

// RegisterDefaults registers the vocabulary and llm extractors.
func RegisterDefaults(r *Registry) {
	r.Register(domain.ExtractorVocabulary, buildVocabulary)
	r.Register(domain.ExtractorLLM, buildLLM)
}

func buildVocabulary(_ Dependencies) (driven.MetadataExtractor, error) {
	return vocabulary.New(), nil
}

func buildLLM(deps Dependencies) (driven.MetadataExtractor, error) {
	return llm.New(deps.LLM, llm.WithTimeout(deps.Timeout), llm.WithPrompts(deps.Prompts))
}
