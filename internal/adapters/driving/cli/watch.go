package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-jobs/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

var (
	watchDebounce  time.Duration
	watchSkipFirst bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-index posting files as they change",
	Long: `Indexes every posting file under the directory, then watches it and
re-indexes each file that is created or written. Deleting a file does not
remove its postings from the index.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", filesystem.DefaultDebounce, "quiet period before a changed file is re-indexed")
	watchCmd.Flags().BoolVar(&watchSkipFirst, "skip-initial", false, "do not index existing files before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	root := filesystem.ResolvePath(args[0])

	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if !watchSkipFirst {
		jobs, err := filesystem.New().Load(ctx, root)
		if err != nil {
			return fmt.Errorf("load postings: %w", err)
		}
		if err := indexFile(cmd, app, root, jobs); err != nil {
			return err
		}
	}

	watcher := filesystem.NewWatcher(root, watchDebounce)
	defer watcher.Close()

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", root)

	for path := range changes {
		jobs, err := filesystem.LoadFile(path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}
		if err := indexFile(cmd, app, path, jobs); err != nil {
			logger.Error("%v", err)
		}
	}
	return nil
}

// indexFile indexes the postings loaded from one location and reports the outcome.
func indexFile(cmd *cobra.Command, app *App, path string, jobs []domain.JobPosting) error {
	if len(jobs) == 0 {
		logger.Info("no postings in %s", path)
		return nil
	}
	cmd.Printf("%s:\n", path)
	report, err := app.Index.IndexJobs(cmd.Context(), jobs, domain.IndexOptions{})
	printReport(cmd, report)
	if err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}
	return nil
}
