package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Environment variables that override secrets and endpoints from the file.
const (
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvQdrantKey   = "QDRANT_API_KEY"
	EnvRerankerKey = "RERANKER_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
)

// DefaultDir returns ~/.sercha-jobs.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".sercha-jobs"), nil
}

// ConfigStore reads and writes the TOML configuration file.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
	envFiles []string
	validate *validator.Validate
}

// NewConfigStore creates a store for the given file.
// An empty path means ~/.sercha-jobs/config.toml.
// .env files in the working directory and next to the config file are read on Load.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.toml")
	}

	return &ConfigStore{
		filePath: path,
		envFiles: []string{".env", filepath.Join(filepath.Dir(path), ".env")},
		validate: validator.New(),
	}, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load returns the effective configuration: defaults, then the file,
// then .env values, then the process environment. A missing file is not
// an error. The result is validated; any failure wraps domain.ErrInvalidConfig.
func (s *ConfigStore) Load() (domain.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("No config file at %s, using defaults", s.filePath)
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %w", domain.ErrInvalidConfig, s.filePath, err)
		}
	}

	applyEnv(&cfg, s.lookupEnv())

	if err := s.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks struct constraints and cross-field rules.
func (s *ConfigStore) Validate(cfg domain.Config) error {
	if err := s.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return cfg.Validate()
}

// Save writes cfg to the file, creating its directory.
func (s *ConfigStore) Save(cfg domain.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Encode renders cfg as TOML.
func Encode(cfg domain.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// lookupEnv merges .env files under the process environment.
// Process variables win over .env values.
func (s *ConfigStore) lookupEnv() func(string) (string, bool) {
	dotenv := make(map[string]string)
	for _, path := range s.envFiles {
		vals, err := godotenv.Read(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Warn("ignoring %s: %v", path, err)
			}
			continue
		}
		for k, v := range vals {
			if _, seen := dotenv[k]; !seen {
				dotenv[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}
}

func applyEnv(cfg *domain.Config, lookup func(string) (string, bool)) {
	if key, ok := lookup(EnvOpenAIKey); ok {
		if cfg.Embedding.Provider == domain.AIProviderOpenAI {
			cfg.Embedding.APIKey = key
		}
		if cfg.LLM.Provider == domain.AIProviderOpenAI {
			cfg.LLM.APIKey = key
		}
	}
	if key, ok := lookup(EnvQdrantKey); ok {
		cfg.VectorStore.APIKey = key
	}
	if key, ok := lookup(EnvRerankerKey); ok {
		cfg.Reranker.APIKey = key
	}
	if dsn, ok := lookup(EnvDatabaseURL); ok {
		cfg.VectorStore.DSN = dsn
	}
}
