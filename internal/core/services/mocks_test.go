package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	mu       sync.Mutex
	failures []error // returned by successive EmbedBatch calls before succeeding
	embedErr error
	calls    int
	batches  [][]string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return []float32{float32(len(text)), 1}, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		if err != nil {
			return nil, err
		}
	}
	m.batches = append(m.batches, texts)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1}
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return 2 }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	mu        sync.Mutex
	records   map[string]driven.VectorRecord
	hits      []domain.ChunkSearchHit
	queryErr  error
	upsertErr error
	deleteErr error
	deleted   []string
	lastTopK  int
	lastQuery *driven.VectorFilter
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{records: make(map[string]driven.VectorRecord)}
}

func (m *mockVectorStore) Upsert(_ context.Context, records []driven.VectorRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return nil
}

func (m *mockVectorStore) Query(_ context.Context, _ []float32, topK int, filter *driven.VectorFilter) ([]domain.ChunkSearchHit, error) {
	m.lastTopK = topK
	m.lastQuery = filter
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.hits, nil
}

func (m *mockVectorStore) Delete(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for _, id := range ids {
		delete(m.records, id)
		m.deleted = append(m.deleted, id)
	}
	return nil
}

func (m *mockVectorStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func (m *mockVectorStore) Close() error { return nil }

func (m *mockVectorStore) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// mockJobStore implements driven.JobStore for testing.
type mockJobStore struct {
	mu     sync.Mutex
	jobs   map[string]domain.ProcessedJob
	chunks map[string][]string
	runs   []domain.IndexRun
}

func newMockJobStore() *mockJobStore {
	return &mockJobStore{
		jobs:   make(map[string]domain.ProcessedJob),
		chunks: make(map[string][]string),
	}
}

func (m *mockJobStore) SaveJob(_ context.Context, job domain.ProcessedJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.Job.ID] = job
	return nil
}

func (m *mockJobStore) GetJob(_ context.Context, id string) (*domain.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p.Job, nil
}

func (m *mockJobStore) ChunkIDs(_ context.Context, jobID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chunks[jobID], nil
}

func (m *mockJobStore) ReplaceChunks(_ context.Context, jobID string, chunks []domain.TextChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ID()
	}
	m.chunks[jobID] = ids
	return nil
}

func (m *mockJobStore) SaveRun(_ context.Context, run domain.IndexRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockJobStore) Stats(_ context.Context) (domain.JobStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ids := range m.chunks {
		n += len(ids)
	}
	stats := domain.JobStats{Jobs: len(m.jobs), Chunks: n}
	if len(m.runs) > 0 {
		last := m.runs[len(m.runs)-1]
		stats.LastRun = &last
	}
	return stats, nil
}

func (m *mockJobStore) Close() error { return nil }

// mockReranker implements driven.Reranker for testing.
type mockReranker struct {
	scores []driven.RerankScore
	err    error
	docs   []string
}

func (m *mockReranker) Score(_ context.Context, _ string, docs []string) ([]driven.RerankScore, error) {
	m.docs = docs
	return m.scores, m.err
}

func (m *mockReranker) ModelName() string { return "mock-rerank" }

// mockCache implements driven.ResultCache for testing.
type mockCache struct {
	entries map[string]domain.SearchResponse
	getErr  error
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]domain.SearchResponse)}
}

func (m *mockCache) Get(_ context.Context, key string) (*domain.SearchResponse, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	resp, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &resp, true, nil
}

func (m *mockCache) Set(_ context.Context, key string, resp domain.SearchResponse) error {
	m.sets++
	m.entries[key] = resp
	return nil
}

// stubNormaliser trims the raw text.
type stubNormaliser struct{}

func (stubNormaliser) Normalise(job domain.JobPosting) domain.CleanedDocument {
	return domain.CleanedDocument{JobID: job.ID, Text: strings.TrimSpace(job.RawText)}
}

// stubChunker emits one chunk per line, indexed by line number.
type stubChunker struct{}

func (stubChunker) Chunk(text, jobID string, _ domain.ChunkingStrategy) []domain.TextChunk {
	var out []domain.TextChunk
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, domain.TextChunk{
			ParentJobID:     jobID,
			ChunkIndex:      i,
			ChunkType:       domain.ChunkSegment,
			Text:            line,
			WordCount:       len(strings.Fields(line)),
			ConfidenceScore: 1,
		})
	}
	return out
}

func (stubChunker) Stats(chunks []domain.TextChunk) domain.ProcessingStats {
	return domain.ProcessingStats{TotalChunks: len(chunks)}
}

func (stubChunker) Settings() domain.ChunkingSettings { return domain.DefaultChunkingSettings() }

// stubExtractor marks every job remote.
type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, _ string) domain.ExtractedMetadata {
	return domain.ExtractedMetadata{RemoteWork: true}
}

func (stubExtractor) Name() string { return "stub" }

// hit builds a chunk hit for tests.
func hit(jobID string, index int, typ domain.ChunkType, score float64, text string) domain.ChunkSearchHit {
	return domain.ChunkSearchHit{
		ChunkID:         domain.ChunkID(jobID, index),
		ParentJobID:     jobID,
		SimilarityScore: score,
		Payload: domain.ChunkPayload{
			ParentJobID: jobID,
			ChunkIndex:  index,
			ChunkType:   typ,
			Text:        text,
			Snapshot:    domain.MetadataSnapshot{Title: "Job " + jobID},
		},
	}
}
