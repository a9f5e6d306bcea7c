package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvOpenAIKey, EnvQdrantKey, EnvRerankerKey, EnvDatabaseURL} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) *ConfigStore {
	t.Helper()
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	store, err := NewConfigStore(path)
	require.NoError(t, err)
	store.envFiles = []string{filepath.Join(dir, ".env")}
	return store
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".sercha-jobs", "config.toml"), store.Path())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	store.envFiles = nil

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	store := writeConfig(t, `
[chunking]
max_chunk_size = 300
min_chunk_size = 20
strategy = "sections"

[search]
timeout = "3s"
top_k = 5
`)

	cfg, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Chunking.MaxChunkSize)
	assert.Equal(t, 20, cfg.Chunking.MinChunkSize)
	assert.Equal(t, domain.DefaultOverlapSize, cfg.Chunking.OverlapSize)
	assert.Equal(t, domain.StrategySection, cfg.Chunking.Strategy)
	assert.Equal(t, 3*time.Second, cfg.Search.Timeout.Std())
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, 100, cfg.Search.CandidatePoolSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"min above max", "[chunking]\nmax_chunk_size = 50\nmin_chunk_size = 100\n"},
		{"overlap too large", "[chunking]\nmax_chunk_size = 50\nmin_chunk_size = 10\noverlap_size = 50\n"},
		{"unknown strategy", "[chunking]\nstrategy = \"paragraphs\"\n"},
		{"unknown key", "[chunking]\nmax_chunk = 10\n"},
		{"bad duration", "[search]\ntimeout = \"soon\"\n"},
		{"openai without key", "[embedding]\nprovider = \"openai\"\n"},
		{"llm extractor without llm", "[extractor]\nkind = \"llm\"\n"},
		{"qdrant without url", "[vector_store]\nbackend = \"qdrant\"\n"},
		{"bad backend", "[vector_store]\nbackend = \"faiss\"\n"},
		{"malformed toml", "[chunking\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := writeConfig(t, tt.content).Load()
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	store := writeConfig(t, `
[embedding]
provider = "openai"

[llm]
provider = "openai"

[vector_store]
backend = "postgres"
`)
	t.Setenv(EnvOpenAIKey, "sk-from-env")
	t.Setenv(EnvDatabaseURL, "postgres://localhost/jobs")

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Embedding.APIKey)
	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	assert.Equal(t, "postgres://localhost/jobs", cfg.VectorStore.DSN)
}

func TestLoad_DotEnv(t *testing.T) {
	store := writeConfig(t, "[reranker]\nurl = \"http://localhost:8080/rerank\"\n")
	require.NoError(t, os.WriteFile(store.envFiles[0], []byte("RERANKER_API_KEY=from-dotenv\nQDRANT_API_KEY=q\n"), 0600))
	t.Setenv(EnvQdrantKey, "from-process")

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Reranker.APIKey)
	assert.Equal(t, "from-process", cfg.VectorStore.APIKey, "process environment wins")
}

func TestSaveAndReload(t *testing.T) {
	clearEnv(t)
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "nested", "config.toml"))
	require.NoError(t, err)
	store.envFiles = nil

	cfg := domain.DefaultConfig()
	cfg.Chunking.Strategy = domain.StrategyOverlapping
	cfg.Search.CacheTTL = domain.Duration(5 * time.Minute)
	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEncode_Masked(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Embedding.APIKey = "sk-1234567890"

	data, err := Encode(cfg.Masked())
	require.NoError(t, err)
	assert.Contains(t, string(data), "sk-1****")
	assert.NotContains(t, string(data), "sk-1234567890")
}
