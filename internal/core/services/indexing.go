package services

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexConfig tunes batch indexing.
type IndexConfig struct {
	// Strategy is used when a call does not choose one.
	Strategy domain.ChunkingStrategy

	// BatchSize is the number of chunks per embedding call.
	BatchSize int

	// Workers bounds concurrent cleaning, chunking and extraction.
	Workers int

	// Retry applies to embedding, upsert and delete calls.
	Retry RetryPolicy

	// RequestsPerSecond paces embedding calls. Zero disables pacing.
	RequestsPerSecond float64
}

// DefaultIndexConfig returns the default indexing settings.
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		Strategy:          domain.StrategyHybrid,
		BatchSize:         32,
		Workers:           runtime.GOMAXPROCS(0),
		Retry:             DefaultRetryPolicy(),
		RequestsPerSecond: 10,
	}
}

// IndexService runs the processing pipeline and writes chunk vectors.
type IndexService struct {
	normaliser driven.JobNormaliser
	chunker    driven.Chunker
	extractor  driven.MetadataExtractor
	embedder   driven.EmbeddingService
	vectors    driven.VectorStore
	store      driven.JobStore
	throttle   *Throttle
	cfg        IndexConfig
	now        func() time.Time
}

// NewIndexService creates an index service.
// The job store is optional; without it stale chunks are not tracked.
func NewIndexService(
	normaliser driven.JobNormaliser,
	chunker driven.Chunker,
	extractor driven.MetadataExtractor,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	store driven.JobStore,
	cfg IndexConfig,
) *IndexService {
	def := DefaultIndexConfig()
	if !cfg.Strategy.IsValid() {
		cfg.Strategy = def.Strategy
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	return &IndexService{
		normaliser: normaliser,
		chunker:    chunker,
		extractor:  extractor,
		embedder:   embedder,
		vectors:    vectors,
		store:      store,
		throttle:   NewThrottle(cfg.RequestsPerSecond, 1),
		cfg:        cfg,
		now:        time.Now,
	}
}

// ProcessJob cleans, chunks and extracts metadata for one posting.
func (s *IndexService) ProcessJob(ctx context.Context, job domain.JobPosting, strategy domain.ChunkingStrategy) domain.ProcessedJob {
	if strategy == "" {
		strategy = s.cfg.Strategy
	}

	out := domain.ProcessedJob{Job: job}
	out.Cleaned = s.normaliser.Normalise(job)
	if out.Cleaned.Text == "" {
		return out
	}

	out.Chunks = s.chunker.Chunk(out.Cleaned.Text, job.ID, strategy)
	out.Metadata = s.extractor.Extract(ctx, out.Cleaned.Text)
	logger.Debug("Processed job %s: %d chunks, %d skills", job.ID, len(out.Chunks), len(out.Metadata.Skills))
	return out
}

// chunkRef ties a chunk to the processed job it came from.
type chunkRef struct {
	job   int
	chunk domain.TextChunk
}

// IndexJobs processes postings in parallel and upserts their chunks in
// batches. Failed batches do not stop the run; the returned report lists
// every job that was fully indexed and the error is a batch ServiceError.
func (s *IndexService) IndexJobs(ctx context.Context, jobs []domain.JobPosting, opts domain.IndexOptions) (domain.IndexReport, error) {
	start := s.now()
	strategy := opts.Strategy
	if strategy == "" {
		strategy = s.cfg.Strategy
	}
	if !strategy.IsValid() {
		return domain.IndexReport{}, domain.NewServiceError("index jobs", domain.KindInvalid,
			fmt.Errorf("chunking strategy %q: %w", strategy, domain.ErrUnsupportedType))
	}

	run := domain.IndexRun{
		ID:        uuid.NewString(),
		Strategy:  strategy,
		StartedAt: start,
		Status:    domain.RunRunning,
	}
	s.saveRun(ctx, run)
	report := domain.IndexReport{RunID: run.ID}

	logger.Section("Indexing")
	jobs = uniqueJobs(jobs)

	processed, err := s.processAll(ctx, jobs, strategy)
	if err != nil {
		s.finishRun(ctx, &run, &report, err)
		return report, err
	}

	var refs []chunkRef
	for i, p := range processed {
		if len(p.Chunks) == 0 {
			logger.Warn("job %s produced no chunks, skipping", p.Job.ID)
			report.Skipped = append(report.Skipped, p.Job.ID)
			continue
		}
		report.Stats.Merge(s.chunker.Stats(p.Chunks))
		for _, c := range p.Chunks {
			refs = append(refs, chunkRef{job: i, chunk: c})
		}
	}

	failed := make(map[int]bool)
	var batchErr error
	failedBatches, totalBatches := 0, 0
	for from := 0; from < len(refs); from += s.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			s.finishRun(ctx, &run, &report, err)
			return report, err
		}
		batch := refs[from:min(from+s.cfg.BatchSize, len(refs))]
		totalBatches++

		if err := s.upsertBatch(ctx, processed, batch); err != nil {
			failedBatches++
			batchErr = err
			for _, r := range batch {
				failed[r.job] = true
			}
			logger.Error("batch %d: %v", totalBatches, err)
			continue
		}
		report.ChunksUpserted += len(batch)
	}

	// Stale chunks go only once the job's new chunks are stored, so a failed
	// job keeps its previous vectors and the JobStore's view of them.
	for i, p := range processed {
		if len(p.Chunks) == 0 {
			report.ChunksDeleted += s.purge(ctx, p)
			continue
		}
		if failed[i] {
			report.Failed = append(report.Failed, p.Job.ID)
			continue
		}
		report.ChunksDeleted += s.deleteStale(ctx, p)
		s.persist(ctx, p)
		report.Indexed = append(report.Indexed, p.Job.ID)
	}
	sort.Strings(report.Indexed)
	sort.Strings(report.Skipped)
	sort.Strings(report.Failed)

	if batchErr != nil {
		err = domain.NewServiceError("index jobs", domain.KindBatch,
			fmt.Errorf("%d of %d batches failed: %w", failedBatches, totalBatches, batchErr))
	}
	s.finishRun(ctx, &run, &report, err)

	logger.Info("Indexed %d jobs (%d chunks) in %s", len(report.Indexed), report.ChunksUpserted, report.Duration)
	return report, err
}

// processAll runs the pure stages over a bounded worker pool.
func (s *IndexService) processAll(ctx context.Context, jobs []domain.JobPosting, strategy domain.ChunkingStrategy) ([]domain.ProcessedJob, error) {
	processed := make([]domain.ProcessedJob, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			processed[i] = s.ProcessJob(gctx, jobs[i], strategy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return processed, ctx.Err()
}

func (s *IndexService) upsertBatch(ctx context.Context, processed []domain.ProcessedJob, batch []chunkRef) error {
	texts := make([]string, len(batch))
	for i, r := range batch {
		texts[i] = r.chunk.Text
	}

	var embeddings [][]float32
	err := s.throttle.Do(ctx, s.cfg.Retry, "embed batch", func(ctx context.Context) error {
		var err error
		embeddings, err = s.embedder.EmbedBatch(ctx, texts)
		return err
	})
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embed: got %d vectors for %d chunks: %w", len(embeddings), len(batch), domain.ErrEmbeddingUnavailable)
	}

	records := make([]driven.VectorRecord, len(batch))
	for i, r := range batch {
		records[i] = driven.VectorRecord{
			ID:        r.chunk.ID(),
			Embedding: embeddings[i],
			Payload:   domain.NewChunkPayload(r.chunk, processed[r.job].Snapshot()),
		}
	}

	err = s.throttle.Do(ctx, s.cfg.Retry, "upsert batch", func(ctx context.Context) error {
		return s.vectors.Upsert(ctx, records)
	})
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// deleteStale removes vectors from an earlier run that the new chunk set
// no longer produces, and returns how many were removed.
func (s *IndexService) deleteStale(ctx context.Context, p domain.ProcessedJob) int {
	if s.store == nil {
		return 0
	}
	previous, err := s.store.ChunkIDs(ctx, p.Job.ID)
	if err != nil {
		logger.Warn("job %s: read previous chunks: %v", p.Job.ID, err)
		return 0
	}

	current := make(map[string]struct{}, len(p.Chunks))
	for _, c := range p.Chunks {
		current[c.ID()] = struct{}{}
	}
	var stale []string
	for _, id := range previous {
		if _, ok := current[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return 0
	}

	err = s.throttle.Do(ctx, s.cfg.Retry, "delete stale chunks", func(ctx context.Context) error {
		return s.vectors.Delete(ctx, stale)
	})
	if err != nil {
		logger.Warn("job %s: delete %d stale chunks: %v", p.Job.ID, len(stale), err)
		return 0
	}
	return len(stale)
}

// purge drops every chunk of a job that no longer produces any.
func (s *IndexService) purge(ctx context.Context, p domain.ProcessedJob) int {
	n := s.deleteStale(ctx, p)
	if n == 0 {
		return 0
	}
	if err := s.store.ReplaceChunks(ctx, p.Job.ID, nil); err != nil {
		logger.Warn("job %s: clear chunks: %v", p.Job.ID, err)
	}
	return n
}

func (s *IndexService) persist(ctx context.Context, p domain.ProcessedJob) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveJob(ctx, p); err != nil {
		logger.Warn("job %s: save posting: %v", p.Job.ID, err)
		return
	}
	if err := s.store.ReplaceChunks(ctx, p.Job.ID, p.Chunks); err != nil {
		logger.Warn("job %s: save chunks: %v", p.Job.ID, err)
	}
}

func (s *IndexService) saveRun(ctx context.Context, run domain.IndexRun) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("index run %s: %v", run.ID, err)
	}
}

func (s *IndexService) finishRun(ctx context.Context, run *domain.IndexRun, report *domain.IndexReport, err error) {
	finished := s.now()
	report.Duration = finished.Sub(run.StartedAt)

	run.FinishedAt = &finished
	run.Jobs = len(report.Indexed)
	run.Chunks = report.ChunksUpserted
	switch {
	case err == nil:
		run.Status = domain.RunCompleted
	case len(report.Indexed) > 0:
		run.Status = domain.RunPartial
	default:
		run.Status = domain.RunFailed
	}
	if err != nil {
		run.Error = err.Error()
	}
	s.saveRun(ctx, *run)
}

// Stats summarises the indexed corpus.
func (s *IndexService) Stats(ctx context.Context) (domain.JobStats, error) {
	if s.store != nil {
		return s.store.Stats(ctx)
	}
	n, err := s.vectors.Count(ctx)
	if err != nil {
		return domain.JobStats{}, fmt.Errorf("count vectors: %w", err)
	}
	return domain.JobStats{Chunks: n}, nil
}

// GetJob returns a stored posting. Without a job store nothing is kept.
func (s *IndexService) GetJob(ctx context.Context, id string) (*domain.JobPosting, error) {
	if s.store == nil {
		return nil, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return s.store.GetJob(ctx, id)
}

// uniqueJobs drops postings without an ID and repeated IDs after the first.
func uniqueJobs(jobs []domain.JobPosting) []domain.JobPosting {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]domain.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if j.ID == "" {
			logger.Warn("skipping posting without id (title %q)", j.Title)
			continue
		}
		if _, dup := seen[j.ID]; dup {
			logger.Warn("skipping duplicate posting %s", j.ID)
			continue
		}
		seen[j.ID] = struct{}{}
		out = append(out, j)
	}
	return out
}
