package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/vectorstore/vecmath"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Ensure vectorStore implements the interface.
var _ driven.VectorStore = (*vectorStore)(nil)

// vectorStore implements driven.VectorStore with a brute-force scan.
// Remote and job ID filters run in SQL; scoring runs in Go.
type vectorStore struct {
	store *Store
}

// Upsert inserts or replaces records by ID in one transaction.
func (s *vectorStore) Upsert(ctx context.Context, records []driven.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	dims, err := s.dimensions(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		if dims == 0 {
			dims = len(r.Embedding)
		}
		if len(r.Embedding) != dims {
			return fmt.Errorf("%w: record %s has %d dimensions, store has %d",
				domain.ErrInvalidInput, r.ID, len(r.Embedding), dims)
		}
	}

	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO vectors (id, job_id, remote, dims, embedding, payload)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				job_id = excluded.job_id,
				remote = excluded.remote,
				dims = excluded.dims,
				embedding = excluded.embedding,
				payload = excluded.payload
		`)
		if err != nil {
			return fmt.Errorf("preparing vector upsert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			payload, err := json.Marshal(r.Payload)
			if err != nil {
				return fmt.Errorf("marshaling payload: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, r.ID, r.Payload.ParentJobID, r.Payload.Snapshot.Metadata.RemoteWork,
				len(r.Embedding), vecmath.Encode(r.Embedding), string(payload)); err != nil {
				return fmt.Errorf("upserting vector %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

func (s *vectorStore) dimensions(ctx context.Context) (int, error) {
	var dims int
	err := s.store.db.QueryRowContext(ctx, "SELECT dims FROM vectors LIMIT 1").Scan(&dims)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading vector dimensions: %w", err)
	}
	return dims, nil
}

// Query scores every matching row against the embedding.
func (s *vectorStore) Query(ctx context.Context, embedding []float32, topK int, filter *driven.VectorFilter) ([]domain.ChunkSearchHit, error) {
	query := "SELECT id, job_id, embedding, payload FROM vectors WHERE 1 = 1"
	var args []any
	if filter != nil {
		if filter.RemoteOnly {
			query += " AND remote = 1"
		}
		if len(filter.JobIDs) > 0 {
			query += " AND job_id IN (" + placeholders(len(filter.JobIDs)) + ")"
			for _, id := range filter.JobIDs {
				args = append(args, id)
			}
		}
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying vectors: %w", domain.ErrVectorStoreUnavailable, err)
	}
	defer rows.Close()

	var hits []domain.ChunkSearchHit
	for rows.Next() {
		var hit domain.ChunkSearchHit
		var blob []byte
		var payload string
		if err := rows.Scan(&hit.ChunkID, &hit.ParentJobID, &blob, &payload); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &hit.Payload); err != nil {
			return nil, fmt.Errorf("unmarshaling payload of %s: %w", hit.ChunkID, err)
		}
		hit.SimilarityScore = vecmath.Cosine(embedding, vecmath.Decode(blob))
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}

	return vecmath.TopK(hits, topK), nil
}

// Delete removes records by ID.
func (s *vectorStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM vectors WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return fmt.Errorf("deleting vectors: %w", err)
	}
	return nil
}

// Count returns the number of stored vectors.
func (s *vectorStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vectors").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting vectors: %w", err)
	}
	return n, nil
}

// Close is a no-op; the owning Store closes the database.
func (s *vectorStore) Close() error {
	return nil
}
