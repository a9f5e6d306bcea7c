package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Ensure jobStore implements the interface.
var _ driven.JobStore = (*jobStore)(nil)

// jobStore implements driven.JobStore.
type jobStore struct {
	store *Store
}

// SaveJob stores or updates a posting with its cleaned text and metadata.
func (s *jobStore) SaveJob(ctx context.Context, job domain.ProcessedJob) error {
	metadataJSON, err := json.Marshal(job.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	var posted sql.NullTime
	if job.Job.PostedDate != nil {
		posted = sql.NullTime{Time: job.Job.PostedDate.UTC(), Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO jobs (id, raw_text, title, company, location, source, url, posted_date, cleaned_text, metadata, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			raw_text = excluded.raw_text,
			title = excluded.title,
			company = excluded.company,
			location = excluded.location,
			source = excluded.source,
			url = excluded.url,
			posted_date = excluded.posted_date,
			cleaned_text = excluded.cleaned_text,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, job.Job.ID, job.Job.RawText, job.Job.Title, job.Job.Company, job.Job.Location,
		job.Job.Source, job.Job.URL, posted, job.Cleaned.Text, string(metadataJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving job: %w", err)
	}
	return nil
}

// GetJob retrieves a posting by ID.
func (s *jobStore) GetJob(ctx context.Context, id string) (*domain.JobPosting, error) {
	var job domain.JobPosting
	var posted sql.NullTime

	err := s.store.db.QueryRowContext(ctx, `
		SELECT id, raw_text, title, company, location, source, url, posted_date
		FROM jobs WHERE id = ?
	`, id).Scan(&job.ID, &job.RawText, &job.Title, &job.Company, &job.Location, &job.Source, &job.URL, &posted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning job: %w", err)
	}

	if posted.Valid {
		t := posted.Time
		job.PostedDate = &t
	}
	return &job, nil
}

// ChunkIDs returns the vector IDs of the chunks stored for a job.
func (s *jobStore) ChunkIDs(ctx context.Context, jobID string) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT chunk_index FROM chunks WHERE job_id = ? ORDER BY chunk_index", jobID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var index int
		if err := rows.Scan(&index); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		ids = append(ids, domain.ChunkID(jobID, index))
	}
	return ids, rows.Err()
}

// ReplaceChunks swaps the chunk set of a job in one transaction.
func (s *jobStore) ReplaceChunks(ctx context.Context, jobID string, chunks []domain.TextChunk) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE job_id = ?", jobID); err != nil {
			return fmt.Errorf("deleting chunks: %w", err)
		}
		if len(chunks) == 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO chunks (job_id, chunk_index, chunk_type, text, word_count, confidence, section_header, overlap_start, overlap_end)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing chunk insert: %w", err)
		}
		defer stmt.Close()

		for _, c := range chunks {
			if _, err := stmt.ExecContext(ctx, jobID, c.ChunkIndex, string(c.ChunkType), c.Text, c.WordCount,
				c.ConfidenceScore, c.SectionHeader, c.OverlapStart, c.OverlapEnd); err != nil {
				return fmt.Errorf("inserting chunk %d: %w", c.ChunkIndex, err)
			}
		}
		return nil
	})
}

// SaveRun inserts or updates an index run.
func (s *jobStore) SaveRun(ctx context.Context, run domain.IndexRun) error {
	var finished sql.NullTime
	if run.FinishedAt != nil {
		finished = sql.NullTime{Time: run.FinishedAt.UTC(), Valid: true}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO index_runs (id, strategy, started_at, finished_at, jobs, chunks, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			jobs = excluded.jobs,
			chunks = excluded.chunks,
			status = excluded.status,
			error = excluded.error
	`, run.ID, string(run.Strategy), run.StartedAt.UTC(), finished, run.Jobs, run.Chunks, string(run.Status), run.Error)
	if err != nil {
		return fmt.Errorf("saving index run: %w", err)
	}
	return nil
}

// Stats counts stored jobs and chunks and loads the latest run.
func (s *jobStore) Stats(ctx context.Context) (domain.JobStats, error) {
	var stats domain.JobStats

	err := s.store.db.QueryRowContext(ctx,
		"SELECT (SELECT COUNT(*) FROM jobs), (SELECT COUNT(*) FROM chunks)",
	).Scan(&stats.Jobs, &stats.Chunks)
	if err != nil {
		return stats, fmt.Errorf("counting jobs: %w", err)
	}

	var run domain.IndexRun
	var strategy, status string
	var finished sql.NullTime
	err = s.store.db.QueryRowContext(ctx, `
		SELECT id, strategy, started_at, finished_at, jobs, chunks, status, error
		FROM index_runs ORDER BY started_at DESC LIMIT 1
	`).Scan(&run.ID, &strategy, &run.StartedAt, &finished, &run.Jobs, &run.Chunks, &status, &run.Error)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return stats, nil
	case err != nil:
		return stats, fmt.Errorf("scanning index run: %w", err)
	}

	run.Strategy = domain.ChunkingStrategy(strategy)
	run.Status = domain.IndexRunStatus(status)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	stats.LastRun = &run
	return stats, nil
}

// Close is a no-op; the owning Store closes the database.
func (s *jobStore) Close() error {
	return nil
}
