package driven

import (
	"context"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// JobStore persists postings, their current chunk sets and index runs.
type JobStore interface {
	// SaveJob stores a posting with its cleaned text and metadata.
	SaveJob(ctx context.Context, job domain.ProcessedJob) error

	// GetJob retrieves a posting by ID.
	GetJob(ctx context.Context, id string) (*domain.JobPosting, error)

	// ChunkIDs returns the IDs of the chunks currently stored for a job.
	ChunkIDs(ctx context.Context, jobID string) ([]string, error)

	// ReplaceChunks swaps the stored chunk set of a job.
	ReplaceChunks(ctx context.Context, jobID string, chunks []domain.TextChunk) error

	// SaveRun inserts or updates an index run.
	SaveRun(ctx context.Context, run domain.IndexRun) error

	// Stats summarises the stored corpus.
	Stats(ctx context.Context) (domain.JobStats, error)

	// Close releases resources.
	Close() error
}

// JobSource loads postings from somewhere outside the pipeline.
type JobSource interface {
	// Load returns every posting found at the given locations.
	Load(ctx context.Context, paths ...string) ([]domain.JobPosting, error)
}

// ResultCache caches search responses by key.
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.SearchResponse, bool, error)
	Set(ctx context.Context, key string, resp domain.SearchResponse) error
}
