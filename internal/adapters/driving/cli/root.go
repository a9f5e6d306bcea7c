// Package cli provides the cobra commands of the sercha-jobs binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sercha-jobs",
	Short: "Semantic search over job postings",
	Long: `sercha-jobs cleans, chunks and embeds job postings, extracts structured
metadata from them, and answers free-text queries with filters and reranking.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetOutput(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.sercha-jobs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig reads the effective configuration.
func loadConfig() (domain.Config, *file.ConfigStore, error) {
	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return domain.Config{}, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return cfg, store, err
	}
	return cfg, store, nil
}
