package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-jobs/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

var (
	indexStrategy string
	indexWorkers  int
)

var indexCmd = &cobra.Command{
	Use:   "index [path...]",
	Short: "Index job postings from files",
	Long: `Loads postings from .json, .jsonl and .yaml files (directories are walked),
then cleans, chunks, extracts metadata, embeds and stores every chunk.

Re-indexing a posting replaces its chunks; chunks the new run no longer
produces are deleted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexStrategy, "strategy", "s", "", "chunking strategy: sections, overlapping or hybrid (default from config)")
	indexCmd.Flags().IntVarP(&indexWorkers, "workers", "w", 0, "concurrent processing workers (default from config)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	strategy := domain.ChunkingStrategy(indexStrategy)
	if strategy != "" && !strategy.IsValid() {
		return fmt.Errorf("unknown strategy %q: %w", indexStrategy, domain.ErrInvalidInput)
	}

	app, err := openApp(cmd.Context(), func(cfg *domain.Config) {
		if indexWorkers > 0 {
			cfg.Indexing.Workers = indexWorkers
		}
	})
	if err != nil {
		return err
	}
	defer app.Close()

	jobs, err := filesystem.New().Load(cmd.Context(), args...)
	if err != nil {
		return fmt.Errorf("load postings: %w", err)
	}
	if len(jobs) == 0 {
		cmd.Println("No postings found.")
		return nil
	}

	report, err := app.Index.IndexJobs(cmd.Context(), jobs, domain.IndexOptions{Strategy: strategy})
	printReport(cmd, report)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	return nil
}

func printReport(cmd *cobra.Command, report domain.IndexReport) {
	cmd.Printf("Indexed %d job(s), %d chunk(s) upserted, %d stale chunk(s) deleted in %s\n",
		len(report.Indexed), report.ChunksUpserted, report.ChunksDeleted, report.Duration.Round(time.Millisecond))
	if len(report.Skipped) > 0 {
		cmd.Printf("  Skipped (no chunks): %v\n", report.Skipped)
	}
	if len(report.Failed) > 0 {
		cmd.Printf("  Failed: %v\n", report.Failed)
	}
	if report.Stats.TotalChunks > 0 {
		cmd.Printf("  Avg words/chunk: %.1f  Avg quality: %.2f\n", report.Stats.AvgWords, report.Stats.AvgQuality)
	}
}
