package domain

import (
	"fmt"
	"time"
)

// Duration is a time.Duration read from and written to config as "30s", "1h".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %w", ErrInvalidConfig, text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the complete application configuration.
type Config struct {
	Chunking    ChunkingSettings    `toml:"chunking"`
	Extractor   ExtractorSettings   `toml:"extractor"`
	Embedding   EmbeddingSettings   `toml:"embedding"`
	LLM         LLMSettings         `toml:"llm"`
	Reranker    RerankerSettings    `toml:"reranker"`
	VectorStore VectorStoreSettings `toml:"vector_store"`
	Storage     StorageSettings     `toml:"storage"`
	Indexing    IndexingSettings    `toml:"indexing"`
	Search      SearchSettings      `toml:"search"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Chunking: DefaultChunkingSettings(),
		Extractor: ExtractorSettings{
			Kind:    ExtractorVocabulary,
			Timeout: Duration(30 * time.Second),
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
		},
		VectorStore: VectorStoreSettings{
			Backend:    VectorBackendSQLite,
			Collection: "job_chunks",
		},
		Indexing: IndexingSettings{
			BatchSize:         32,
			MaxRetries:        3,
			BaseBackoff:       Duration(500 * time.Millisecond),
			MaxBackoff:        Duration(30 * time.Second),
			RequestsPerSecond: 10,
		},
		Search: SearchSettings{
			CandidatePoolSize: 100,
			CandidateCap:      50,
			TopK:              10,
			Timeout:           Duration(10 * time.Second),
			VectorShare:       0.6,
			CacheTTL:          Duration(time.Hour),
			CacheSize:         1000,
		},
	}
}

// Validate checks constraints that struct tags cannot express.
func (c Config) Validate() error {
	if err := c.Chunking.Validate(); err != nil {
		return err
	}
	if c.Extractor.Kind == ExtractorLLM && !c.LLM.IsConfigured() {
		return fmt.Errorf("%w: extractor %q needs an [llm] provider", ErrInvalidConfig, ExtractorLLM)
	}
	if !c.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %q is not usable (missing API key?)", ErrInvalidConfig, c.Embedding.Provider)
	}
	switch c.VectorStore.Backend {
	case VectorBackendQdrant:
		if c.VectorStore.URL == "" {
			return fmt.Errorf("%w: vector_store.url is required for qdrant", ErrInvalidConfig)
		}
	case VectorBackendPostgres:
		if c.VectorStore.DSN == "" {
			return fmt.Errorf("%w: vector_store.dsn (or DATABASE_URL) is required for postgres", ErrInvalidConfig)
		}
	}
	if c.Search.VectorShare <= 0 || c.Search.VectorShare >= 1 {
		return fmt.Errorf("%w: search.vector_share must be in (0, 1)", ErrInvalidConfig)
	}
	return nil
}

// Masked returns a copy with secrets replaced, for display.
func (c Config) Masked() Config {
	c.Embedding.APIKey = mask(c.Embedding.APIKey)
	c.LLM.APIKey = mask(c.LLM.APIKey)
	c.Reranker.APIKey = mask(c.Reranker.APIKey)
	c.VectorStore.APIKey = mask(c.VectorStore.APIKey)
	c.VectorStore.DSN = mask(c.VectorStore.DSN)
	return c
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****"
}

// ExtractorSettings selects the metadata extractor.
type ExtractorSettings struct {
	Kind ExtractorKind `toml:"kind" validate:"oneof=vocabulary llm"`

	// Timeout bounds a single model call of the llm extractor.
	Timeout Duration `toml:"timeout"`
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	Provider   AIProvider `toml:"provider" validate:"oneof=ollama openai"`
	Model      string     `toml:"model,omitempty"`
	BaseURL    string     `toml:"base_url,omitempty" validate:"omitempty,url"`
	APIKey     string     `toml:"api_key,omitempty"`
	Dimensions int        `toml:"dimensions,omitempty" validate:"gte=0"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	return !e.Provider.RequiresAPIKey() || e.APIKey != ""
}

// LLMSettings holds LLM provider configuration. An empty provider means no LLM.
type LLMSettings struct {
	Provider AIProvider `toml:"provider,omitempty" validate:"omitempty,oneof=ollama openai"`
	Model    string     `toml:"model,omitempty"`
	BaseURL  string     `toml:"base_url,omitempty" validate:"omitempty,url"`
	APIKey   string     `toml:"api_key,omitempty"`
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	return !l.Provider.RequiresAPIKey() || l.APIKey != ""
}

// RerankerSettings configures the HTTP cross-encoder. An empty URL disables reranking.
type RerankerSettings struct {
	URL     string   `toml:"url,omitempty" validate:"omitempty,url"`
	Model   string   `toml:"model,omitempty"`
	APIKey  string   `toml:"api_key,omitempty"`
	Timeout Duration `toml:"timeout,omitempty"`

	// MaxChars truncates each document sent to the reranker. Zero keeps full text.
	MaxChars int `toml:"max_chars,omitempty" validate:"gte=0"`
}

// IsConfigured returns true if a reranker endpoint is set.
func (r RerankerSettings) IsConfigured() bool {
	return r.URL != ""
}

// VectorStoreSettings selects and configures the vector store.
type VectorStoreSettings struct {
	Backend VectorBackend `toml:"backend" validate:"oneof=memory sqlite qdrant postgres"`

	// URL is the Qdrant REST endpoint.
	URL string `toml:"url,omitempty" validate:"omitempty,url"`

	// Collection is the Qdrant collection or Postgres table name.
	Collection string `toml:"collection" validate:"required"`

	APIKey string `toml:"api_key,omitempty"`

	// DSN is the Postgres connection string.
	DSN string `toml:"dsn,omitempty"`
}

// StorageSettings locates the job database.
type StorageSettings struct {
	// Dir holds jobs.db. Empty means ~/.sercha-jobs/data; ":memory:" keeps nothing on disk.
	Dir string `toml:"dir,omitempty"`
}

// InMemory reports whether persistence is disabled.
func (s StorageSettings) InMemory() bool {
	return s.Dir == ":memory:"
}

// IndexingSettings tune batch indexing.
type IndexingSettings struct {
	BatchSize int `toml:"batch_size" validate:"gt=0,lte=2048"`

	// Workers bounds the pure-stage pool. Zero means GOMAXPROCS.
	Workers int `toml:"workers" validate:"gte=0"`

	MaxRetries        int      `toml:"max_retries" validate:"gte=0,lte=10"`
	BaseBackoff       Duration `toml:"base_backoff"`
	MaxBackoff        Duration `toml:"max_backoff"`
	RequestsPerSecond float64  `toml:"requests_per_second" validate:"gte=0"`
}

// SearchSettings tune query-time behaviour.
type SearchSettings struct {
	CandidatePoolSize int      `toml:"candidate_pool_size" validate:"gt=0,lte=1000"`
	CandidateCap      int      `toml:"candidate_cap" validate:"gt=0"`
	TopK              int      `toml:"top_k" validate:"gt=0,lte=200"`
	Timeout           Duration `toml:"timeout"`
	VectorShare       float64  `toml:"vector_share"`
	CacheTTL          Duration `toml:"cache_ttl"`

	// CacheSize bounds the number of cached responses. Zero disables the cache.
	CacheSize int `toml:"cache_size" validate:"gte=0"`
}
