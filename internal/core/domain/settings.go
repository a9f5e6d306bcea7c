package domain

import "fmt"

// Default chunking parameters, in words.
const (
	DefaultMaxChunkSize = 512
	DefaultOverlapSize  = 50
	DefaultMinChunkSize = 100
)

// ChunkingSettings parameterise the chunker.
type ChunkingSettings struct {
	MaxChunkSize int              `toml:"max_chunk_size" validate:"gt=0"`
	OverlapSize  int              `toml:"overlap_size" validate:"gte=0"`
	MinChunkSize int              `toml:"min_chunk_size" validate:"gte=0"`
	Strategy     ChunkingStrategy `toml:"strategy" validate:"oneof=sections overlapping hybrid"`
}

// DefaultChunkingSettings returns the default chunking parameters.
func DefaultChunkingSettings() ChunkingSettings {
	return ChunkingSettings{
		MaxChunkSize: DefaultMaxChunkSize,
		OverlapSize:  DefaultOverlapSize,
		MinChunkSize: DefaultMinChunkSize,
		Strategy:     StrategyHybrid,
	}
}

// Validate checks cross-field constraints. A failure is fatal at startup.
func (s ChunkingSettings) Validate() error {
	if s.MaxChunkSize <= 0 {
		return fmt.Errorf("%w: max_chunk_size must be positive, got %d", ErrInvalidConfig, s.MaxChunkSize)
	}
	if s.MinChunkSize > s.MaxChunkSize {
		return fmt.Errorf("%w: min_chunk_size (%d) exceeds max_chunk_size (%d)",
			ErrInvalidConfig, s.MinChunkSize, s.MaxChunkSize)
	}
	if s.OverlapSize < 0 || s.OverlapSize >= s.MaxChunkSize {
		return fmt.Errorf("%w: overlap_size (%d) must be in [0, max_chunk_size)", ErrInvalidConfig, s.OverlapSize)
	}
	if s.Strategy != "" && !s.Strategy.IsValid() {
		return fmt.Errorf("%w: unknown chunking strategy %q", ErrInvalidConfig, s.Strategy)
	}
	return nil
}

// ExtractorKind selects a metadata extractor implementation.
type ExtractorKind string

// Available extractors.
const (
	// ExtractorVocabulary is the self-contained regex and vocabulary extractor.
	ExtractorVocabulary ExtractorKind = "vocabulary"

	// ExtractorLLM asks a language model and falls back to the vocabulary extractor.
	ExtractorLLM ExtractorKind = "llm"
)

// IsValid returns true if the extractor kind is recognised.
func (k ExtractorKind) IsValid() bool {
	return k == ExtractorVocabulary || k == ExtractorLLM
}

// String returns the string representation.
func (k ExtractorKind) String() string {
	return string(k)
}

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI or an OpenAI-compatible API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	return p == AIProviderOllama || p == AIProviderOpenAI
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// VectorBackend selects a vector store implementation.
type VectorBackend string

// Available vector store backends.
const (
	VectorBackendMemory   VectorBackend = "memory"
	VectorBackendSQLite   VectorBackend = "sqlite"
	VectorBackendQdrant   VectorBackend = "qdrant"
	VectorBackendPostgres VectorBackend = "postgres"
)

// IsValid returns true if the backend is recognised.
func (b VectorBackend) IsValid() bool {
	switch b {
	case VectorBackendMemory, VectorBackendSQLite, VectorBackendQdrant, VectorBackendPostgres:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b VectorBackend) String() string {
	return string(b)
}
