package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/vectorstore/vecmath"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is a brute-force in-memory vector store.
type VectorStore struct {
	mu      sync.RWMutex
	records map[string]driven.VectorRecord
	dims    int
}

// NewVectorStore creates an empty store. The first upsert fixes the dimension.
func NewVectorStore() *VectorStore {
	return &VectorStore{records: make(map[string]driven.VectorRecord)}
}

// Upsert inserts or replaces records by ID.
func (s *VectorStore) Upsert(_ context.Context, records []driven.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dims := s.dims
	for _, r := range records {
		if dims == 0 {
			dims = len(r.Embedding)
		}
		if len(r.Embedding) != dims {
			return fmt.Errorf("%w: record %s has %d dimensions, store has %d",
				domain.ErrInvalidInput, r.ID, len(r.Embedding), dims)
		}
	}
	s.dims = dims
	for _, r := range records {
		r.Embedding = append([]float32(nil), r.Embedding...)
		s.records[r.ID] = r
	}
	return nil
}

// Query scores every record against the embedding.
func (s *VectorStore) Query(_ context.Context, embedding []float32, topK int, filter *driven.VectorFilter) ([]domain.ChunkSearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]domain.ChunkSearchHit, 0, len(s.records))
	for id, r := range s.records {
		if !vecmath.Matches(filter, r.Payload) {
			continue
		}
		hits = append(hits, domain.ChunkSearchHit{
			ChunkID:         id,
			ParentJobID:     r.Payload.ParentJobID,
			SimilarityScore: vecmath.Cosine(embedding, r.Embedding),
			Payload:         r.Payload,
		})
	}
	return vecmath.TopK(hits, topK), nil
}

// Delete removes records by ID.
func (s *VectorStore) Delete(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.records, id)
	}
	return nil
}

// Count returns the number of stored records.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}
