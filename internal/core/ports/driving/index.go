package driving

import (
	"context"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// IndexService turns postings into indexed chunks.
type IndexService interface {
	// IndexJobs processes and indexes postings. Re-indexing a posting
	// overwrites its chunks rather than duplicating them.
	IndexJobs(ctx context.Context, jobs []domain.JobPosting, opts domain.IndexOptions) (domain.IndexReport, error)

	// ProcessJob runs cleaning, chunking and extraction without indexing.
	ProcessJob(ctx context.Context, job domain.JobPosting, strategy domain.ChunkingStrategy) domain.ProcessedJob

	// GetJob returns a stored posting, or an error matching domain.ErrNotFound.
	GetJob(ctx context.Context, id string) (*domain.JobPosting, error)

	// Stats summarises the indexed corpus.
	Stats(ctx context.Context) (domain.JobStats, error)
}
