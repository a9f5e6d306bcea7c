// Package qdrant provides a vector store backed by the Qdrant REST API.
//
// Chunk IDs are not valid Qdrant point IDs, so each point is keyed by a
// name-based UUID of the chunk ID and carries the chunk ID in its payload.
// The collection is created with cosine distance on the first upsert.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/upstream"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultTimeout bounds a single REST call.
const DefaultTimeout = 15 * time.Second

const provider = "qdrant"

// pointNamespace seeds the point UUIDs.
var pointNamespace = uuid.MustParse("6f1c2a9e-3b7d-4f0e-9a51-8d2c7e4b6a10")

// Config holds configuration for the Qdrant store.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Store is a minimal REST client to Qdrant.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client

	mu     sync.Mutex
	exists bool
}

type point struct {
	ID      string       `json:"id"`
	Vector  []float32    `json:"vector"`
	Payload pointPayload `json:"payload"`
}

type pointPayload struct {
	ChunkID string `json:"chunk_id"`
	domain.ChunkPayload
}

type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
	Filter      *filter   `json:"filter,omitempty"`
}

type filter struct {
	Must []condition `json:"must"`
}

type condition struct {
	Key   string `json:"key"`
	Match match  `json:"match"`
}

type match struct {
	Value any      `json:"value,omitempty"`
	Any   []string `json:"any,omitempty"`
}

type searchResponse struct {
	Result []struct {
		Score   float64      `json:"score"`
		Payload pointPayload `json:"payload"`
	} `json:"result"`
}

type countResponse struct {
	Result struct {
		Count int `json:"count"`
	} `json:"result"`
}

// New creates a Qdrant store.
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%s: %w: url is required", provider, domain.ErrInvalidConfig)
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("%s: %w: collection is required", provider, domain.ErrInvalidConfig)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Store{
		url:        strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// PointID returns the Qdrant point ID for a chunk ID.
func PointID(chunkID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(chunkID)).String()
}

// Upsert writes points, creating the collection on first use.
func (s *Store) Upsert(ctx context.Context, records []driven.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.ensureCollection(ctx, len(records[0].Embedding)); err != nil {
		return err
	}

	points := make([]point, len(records))
	for i, r := range records {
		points[i] = point{
			ID:      PointID(r.ID),
			Vector:  r.Embedding,
			Payload: pointPayload{ChunkID: r.ID, ChunkPayload: r.Payload},
		}
	}
	_, err := s.do(ctx, http.MethodPut, s.collectionPath("/points?wait=true"), map[string]any{"points": points})
	return err
}

// Query runs a filtered similarity search. A missing collection yields no hits.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int, f *driven.VectorFilter) ([]domain.ChunkSearchHit, error) {
	req := searchRequest{Vector: embedding, Limit: topK, WithPayload: true, Filter: buildFilter(f)}

	body, err := s.do(ctx, http.MethodPost, s.collectionPath("/points/search"), req)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w: decode search response: %w", provider, domain.ErrVectorStoreUnavailable, err)
	}

	hits := make([]domain.ChunkSearchHit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, domain.ChunkSearchHit{
			ChunkID:         r.Payload.ChunkID,
			ParentJobID:     r.Payload.ParentJobID,
			SimilarityScore: r.Score,
			Payload:         r.Payload.ChunkPayload,
		})
	}
	return hits, nil
}

// Delete removes points by chunk ID.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	points := make([]string, len(ids))
	for i, id := range ids {
		points[i] = PointID(id)
	}
	_, err := s.do(ctx, http.MethodPost, s.collectionPath("/points/delete?wait=true"), map[string]any{"points": points})
	if isNotFound(err) {
		return nil
	}
	return err
}

// Count returns the exact number of points.
func (s *Store) Count(ctx context.Context) (int, error) {
	body, err := s.do(ctx, http.MethodPost, s.collectionPath("/points/count"), map[string]any{"exact": true})
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, err
	}

	var resp countResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%s: decode count response: %w", provider, err)
	}
	return resp.Result.Count, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func (s *Store) ensureCollection(ctx context.Context, dims int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exists {
		return nil
	}

	_, err := s.do(ctx, http.MethodGet, s.collectionPath(""), nil)
	if isNotFound(err) {
		body := map[string]any{"vectors": map[string]any{"size": dims, "distance": "Cosine"}}
		if _, err = s.do(ctx, http.MethodPut, s.collectionPath(""), body); err == nil {
			logger.Info("created qdrant collection %s (%d dimensions)", s.collection, dims)
		}
	}
	if err != nil {
		return err
	}
	s.exists = true
	return nil
}

func buildFilter(f *driven.VectorFilter) *filter {
	if f == nil {
		return nil
	}
	var must []condition
	if f.RemoteOnly {
		must = append(must, condition{Key: "snapshot.metadata.remote_work", Match: match{Value: true}})
	}
	if len(f.JobIDs) > 0 {
		must = append(must, condition{Key: "parent_job_id", Match: match{Any: f.JobIDs}})
	}
	if len(must) == 0 {
		return nil
	}
	return &filter{Must: must}
}

func (s *Store) collectionPath(suffix string) string {
	return s.url + "/collections/" + s.collection + suffix
}

// statusError keeps the HTTP status so callers can treat 404 specially.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == http.StatusNotFound
}

func (s *Store) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reader io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, upstream.TransportError(provider, domain.ErrVectorStoreUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.TransportError(provider, domain.ErrVectorStoreUnavailable, err)
	}
	if !upstream.OK(resp.StatusCode) {
		return nil, &statusError{
			status: resp.StatusCode,
			err:    upstream.StatusError(provider, domain.ErrVectorStoreUnavailable, resp.StatusCode, body),
		}
	}
	return body, nil
}
