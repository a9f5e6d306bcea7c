package driven

import "github.com/custodia-labs/sercha-jobs/internal/core/domain"

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and environment overrides.
type ConfigStore interface {
	// Load returns the effective, validated configuration.
	// A missing file yields the defaults.
	Load() (domain.Config, error)

	// Validate checks cfg without reading anything.
	Validate(cfg domain.Config) error

	// Save persists cfg.
	Save(cfg domain.Config) error

	// Path returns the configuration file path.
	Path() string
}
