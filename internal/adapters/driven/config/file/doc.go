// Package file provides file-based configuration adapters.
//
// Adapters:
//   - ConfigStore: TOML configuration with .env and environment overrides
//   - PromptStore: user-editable LLM prompt templates
package file
