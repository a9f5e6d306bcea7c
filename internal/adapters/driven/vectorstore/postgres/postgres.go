// Package postgres provides a vector store on PostgreSQL with the pgvector
// extension, accessed through a pgx connection pool.
//
// The table is created on the first upsert, once the embedding dimension
// is known. Vectors travel as pgvector text literals so no extra codec
// is needed.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// undefinedTable is the SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// Store keeps chunk vectors in one pgvector table.
type Store struct {
	pool  *pgxpool.Pool
	table string

	mu     sync.Mutex
	exists bool
}

// Connect opens a pool and verifies the connection.
func Connect(ctx context.Context, dsn, table string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres: %w: dsn is required", domain.ErrInvalidConfig)
	}
	if table == "" {
		return nil, fmt.Errorf("postgres: %w: table is required", domain.ErrInvalidConfig)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w: %w", domain.ErrVectorStoreUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, unavailable(err)
	}

	return &Store{pool: pool, table: pgx.Identifier{table}.Sanitize()}, nil
}

// Upsert writes records in one batch, creating the table on first use.
func (s *Store) Upsert(ctx context.Context, records []driven.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.ensureTable(ctx, len(records[0].Embedding)); err != nil {
		return err
	}

	query := `INSERT INTO ` + s.table + ` (id, job_id, remote, embedding, payload)
		VALUES ($1, $2, $3, $4::vector, $5)
		ON CONFLICT (id) DO UPDATE SET
			job_id = EXCLUDED.job_id,
			remote = EXCLUDED.remote,
			embedding = EXCLUDED.embedding,
			payload = EXCLUDED.payload`

	batch := &pgx.Batch{}
	for _, r := range records {
		payload, err := json.Marshal(r.Payload)
		if err != nil {
			return fmt.Errorf("marshaling payload: %w", err)
		}
		batch.Queue(query, r.ID, r.Payload.ParentJobID, r.Payload.Snapshot.Metadata.RemoteWork,
			VectorLiteral(r.Embedding), payload)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return unavailable(err)
	}
	return nil
}

// Query orders rows by cosine distance. A missing table yields no hits.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int, filter *driven.VectorFilter) ([]domain.ChunkSearchHit, error) {
	where, args := buildWhere(filter, VectorLiteral(embedding))
	args = append(args, topK)

	query := `SELECT id, job_id, payload, 1 - (embedding <=> $1::vector) AS score
		FROM ` + s.table + where + `
		ORDER BY embedding <=> $1::vector, id
		LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, unavailable(err)
	}

	hits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ChunkSearchHit, error) {
		var hit domain.ChunkSearchHit
		var payload []byte
		if err := row.Scan(&hit.ChunkID, &hit.ParentJobID, &payload, &hit.SimilarityScore); err != nil {
			return hit, err
		}
		return hit, json.Unmarshal(payload, &hit.Payload)
	})
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return hits, nil
}

// Delete removes rows by ID.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `DELETE FROM `+s.table+` WHERE id = ANY($1)`, ids)
	if err != nil && !isUndefinedTable(err) {
		return unavailable(err)
	}
	return nil
}

// Count returns the number of rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+s.table).Scan(&n)
	if err != nil {
		if isUndefinedTable(err) {
			return 0, nil
		}
		return 0, unavailable(err)
	}
	return n, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) ensureTable(ctx context.Context, dims int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exists {
		return nil
	}

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS ` + s.table + ` (
			id        TEXT PRIMARY KEY,
			job_id    TEXT NOT NULL,
			remote    BOOLEAN NOT NULL DEFAULT FALSE,
			embedding vector(` + strconv.Itoa(dims) + `) NOT NULL,
			payload   JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ` + pgx.Identifier{strings.Trim(s.table, `"`) + "_job_id"}.Sanitize() +
			` ON ` + s.table + ` (job_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return unavailable(err)
		}
	}

	logger.Debug("postgres vector table %s ready (%d dimensions)", s.table, dims)
	s.exists = true
	return nil
}

// buildWhere renders the filter. $1 is always the query vector.
func buildWhere(filter *driven.VectorFilter, vector string) (string, []any) {
	args := []any{vector}
	if filter == nil {
		return "", args
	}

	var conds []string
	if filter.RemoteOnly {
		conds = append(conds, "remote")
	}
	if len(filter.JobIDs) > 0 {
		args = append(args, filter.JobIDs)
		conds = append(conds, "job_id = ANY($"+strconv.Itoa(len(args))+")")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// VectorLiteral formats a vector as pgvector text input, e.g. "[1,0.5]".
func VectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTable
}

func unavailable(err error) error {
	return domain.Retryable(fmt.Errorf("postgres: %w: %w", domain.ErrVectorStoreUnavailable, err))
}
