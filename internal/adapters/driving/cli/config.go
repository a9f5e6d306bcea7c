package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/ai"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

var (
	configPing  bool
	configForce bool
)

// aiValidator checks provider connectivity for config validate --ping.
var aiValidator driven.AIConfigValidator = ai.NewConfigValidator()

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and check configuration",
	Long: `Configuration is read from ~/.sercha-jobs/config.toml (or --config), then
.env files, then OPENAI_API_KEY, QDRANT_API_KEY, RERANKER_API_KEY and
DATABASE_URL from the environment.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configValidateCmd.Flags().BoolVar(&configPing, "ping", false, "also contact the embedding, LLM and reranker providers")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configValidateCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, store, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := file.Encode(cfg.Masked())
	if err != nil {
		return err
	}
	cmd.Printf("# %s\n", store.Path())
	cmd.Print(string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	cfg, store, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.Printf("%s: ok\n", store.Path())

	if !configPing {
		return nil
	}

	checks := []struct {
		name string
		run  func() error
	}{
		{"embedding", func() error { return aiValidator.ValidateEmbedding(&cfg.Embedding) }},
		{"llm", func() error { return aiValidator.ValidateLLM(&cfg.LLM) }},
		{"reranker", func() error { return aiValidator.ValidateReranker(&cfg.Reranker) }},
	}

	var failed []error
	for _, c := range checks {
		if err := c.run(); err != nil {
			cmd.Printf("  %-9s FAIL %v\n", c.name, err)
			failed = append(failed, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		cmd.Printf("  %-9s ok\n", c.name)
	}
	return errors.Join(failed...)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(store.Path()); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", store.Path())
	}

	if err := store.Save(domain.DefaultConfig()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	cmd.Printf("Wrote %s\n", store.Path())
	return nil
}
