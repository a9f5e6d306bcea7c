package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-jobs/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/postprocessors/chunker"
)

var (
	extractStrategy string
	extractChunks   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract metadata from postings without indexing",
	Long: `Runs cleaning, chunking and metadata extraction on a posting file and
prints the result as JSON. Nothing is embedded or stored.

Posting files (.json, .jsonl, .yaml) yield one entry per posting; any other
file is read as the raw text of a single posting.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractStrategy, "strategy", "s", "", "chunking strategy: sections, overlapping or hybrid (default from config)")
	extractCmd.Flags().BoolVar(&extractChunks, "chunks", false, "include chunk text in the output")
	rootCmd.AddCommand(extractCmd)
}

// extraction is the JSON shape printed per posting.
type extraction struct {
	JobID    string                   `json:"job_id"`
	Title    string                   `json:"title,omitempty"`
	Metadata domain.ExtractedMetadata `json:"metadata"`
	Stats    domain.ProcessingStats   `json:"stats"`
	Chunks   []domain.TextChunk       `json:"chunks,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	strategy := domain.ChunkingStrategy(extractStrategy)
	if strategy != "" && !strategy.IsValid() {
		return fmt.Errorf("unknown strategy %q: %w", extractStrategy, domain.ErrInvalidInput)
	}

	jobs, err := readPostings(args[0])
	if err != nil {
		return err
	}

	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	out := make([]extraction, 0, len(jobs))
	for _, job := range jobs {
		p := app.Index.ProcessJob(cmd.Context(), job, strategy)
		e := extraction{
			JobID:    job.ID,
			Title:    job.Title,
			Metadata: p.Metadata,
			Stats:    chunker.Stats(p.Chunks),
		}
		if extractChunks {
			e.Chunks = p.Chunks
		}
		out = append(out, e)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal extraction: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// readPostings loads a posting file, or wraps any other file as one posting.
func readPostings(path string) ([]domain.JobPosting, error) {
	path = filesystem.ResolvePath(path)
	if filesystem.Supported(path) {
		return filesystem.LoadFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []domain.JobPosting{{ID: id, RawText: string(data)}}, nil
}
