package driven

import (
	"context"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// VectorRecord is one chunk vector with its payload.
type VectorRecord struct {
	// ID is "{parent_job_id}_chunk_{chunk_index}". Upserting the same ID overwrites.
	ID        string
	Embedding []float32
	Payload   domain.ChunkPayload
}

// VectorFilter narrows a vector query.
type VectorFilter struct {
	// JobIDs restricts hits to these parent jobs when non-empty.
	JobIDs []string

	// RemoteOnly restricts hits to postings flagged as remote.
	RemoteOnly bool
}

// VectorStore persists chunk vectors and answers similarity queries.
type VectorStore interface {
	// Upsert inserts or replaces records by ID.
	Upsert(ctx context.Context, records []VectorRecord) error

	// Query returns the topK most similar chunks, best first.
	// A nil filter matches everything.
	Query(ctx context.Context, embedding []float32, topK int, filter *VectorFilter) ([]domain.ChunkSearchHit, error)

	// Delete removes records by ID. Unknown IDs are ignored.
	Delete(ctx context.Context, ids []string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
