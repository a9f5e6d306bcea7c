package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Ensure JobStore implements the interface.
var _ driven.JobStore = (*JobStore)(nil)

// JobStore is an in-memory implementation of driven.JobStore.
type JobStore struct {
	mu     sync.RWMutex
	jobs   map[string]domain.ProcessedJob
	chunks map[string][]domain.TextChunk
	runs   map[string]domain.IndexRun
}

// NewJobStore creates a new in-memory job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs:   make(map[string]domain.ProcessedJob),
		chunks: make(map[string][]domain.TextChunk),
		runs:   make(map[string]domain.IndexRun),
	}
}

// SaveJob stores or updates a posting.
func (s *JobStore) SaveJob(_ context.Context, job domain.ProcessedJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.Chunks = nil
	s.jobs[job.Job.ID] = job
	return nil
}

// GetJob retrieves a posting by ID.
func (s *JobStore) GetJob(_ context.Context, id string) (*domain.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	posting := job.Job
	return &posting, nil
}

// ChunkIDs returns the vector IDs of the stored chunks of a job.
func (s *JobStore) ChunkIDs(_ context.Context, jobID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks := s.chunks[jobID]
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ID()
	}
	return ids, nil
}

// ReplaceChunks swaps the chunk set of a job.
func (s *JobStore) ReplaceChunks(_ context.Context, jobID string, chunks []domain.TextChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(chunks) == 0 {
		delete(s.chunks, jobID)
		return nil
	}
	s.chunks[jobID] = append([]domain.TextChunk(nil), chunks...)
	return nil
}

// SaveRun stores or updates an index run.
func (s *JobStore) SaveRun(_ context.Context, run domain.IndexRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// Stats counts jobs and chunks and reports the latest run.
func (s *JobStore) Stats(_ context.Context) (domain.JobStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.JobStats{Jobs: len(s.jobs)}
	for _, chunks := range s.chunks {
		stats.Chunks += len(chunks)
	}
	for id := range s.runs {
		run := s.runs[id]
		if stats.LastRun == nil || run.StartedAt.After(stats.LastRun.StartedAt) {
			stats.LastRun = &run
		}
	}
	return stats, nil
}

// Close is a no-op.
func (s *JobStore) Close() error {
	return nil
}
