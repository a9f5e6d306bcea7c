// Package reranker provides a cross-encoder adapter for HTTP rerank servers.
//
// The request carries the documents under both "texts" (Hugging Face text
// embeddings inference) and "documents" (Cohere, Jina, vLLM). Responses
// are accepted in either shape:
//
//	[{"index": 0, "score": 0.91}, ...]
//	{"results": [{"index": 0, "relevance_score": 0.91}, ...]}
package reranker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/upstream"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Ensure Reranker implements the interface.
var _ driven.Reranker = (*Reranker)(nil)

// DefaultTimeout bounds a rerank request when none is configured.
const DefaultTimeout = 5 * time.Second

const provider = "reranker"

// Config holds configuration for the HTTP reranker.
type Config struct {
	// URL is the full rerank endpoint, e.g. http://localhost:8080/rerank.
	URL string

	// Model is sent as "model" when set.
	Model string

	// APIKey is sent as a bearer token when set.
	APIKey string

	Timeout time.Duration

	// MaxChars truncates each document. Zero sends full text.
	MaxChars int
}

// Reranker scores documents with a remote cross-encoder.
type Reranker struct {
	client   *http.Client
	url      string
	model    string
	apiKey   string
	maxChars int
}

type rerankRequest struct {
	Model     string   `json:"model,omitempty"`
	Query     string   `json:"query"`
	Texts     []string `json:"texts"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

// New creates an HTTP reranker.
func New(cfg Config) (*Reranker, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%s: %w: url is required", provider, domain.ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Reranker{
		client:   &http.Client{Timeout: cfg.Timeout},
		url:      cfg.URL,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		maxChars: cfg.MaxChars,
	}, nil
}

// Score posts the query and documents and returns one score per document.
func (r *Reranker) Score(ctx context.Context, query string, documents []string) ([]driven.RerankScore, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	docs := make([]string, len(documents))
	for i, d := range documents {
		docs[i] = truncate(d, r.maxChars)
	}

	jsonBody, err := json.Marshal(rerankRequest{
		Model:     r.model,
		Query:     query,
		Texts:     docs,
		Documents: docs,
		TopN:      len(docs),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, upstream.TransportError(provider, domain.ErrRerankerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.TransportError(provider, domain.ErrRerankerUnavailable, err)
	}
	if !upstream.OK(resp.StatusCode) {
		return nil, upstream.StatusError(provider, domain.ErrRerankerUnavailable, resp.StatusCode, body)
	}

	return parseScores(body)
}

// ModelName returns the configured model, or the endpoint when none is set.
func (r *Reranker) ModelName() string {
	if r.model != "" {
		return r.model
	}
	return r.url
}

func parseScores(body []byte) ([]driven.RerankScore, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w: response is not JSON", provider, domain.ErrRerankerUnavailable)
	}

	root := gjson.ParseBytes(body)
	items := root
	if !root.IsArray() {
		items = root.Get("results")
		if !items.IsArray() {
			items = root.Get("data")
		}
	}
	if !items.IsArray() {
		return nil, fmt.Errorf("%s: %w: no results array in response", provider, domain.ErrRerankerUnavailable)
	}

	var scores []driven.RerankScore
	var bad error
	items.ForEach(func(_, item gjson.Result) bool {
		index := item.Get("index")
		score := item.Get("score")
		if !score.Exists() {
			score = item.Get("relevance_score")
		}
		if index.Type != gjson.Number || score.Type != gjson.Number {
			bad = fmt.Errorf("%s: %w: malformed result %s", provider, domain.ErrRerankerUnavailable, item.Raw)
			return false
		}
		scores = append(scores, driven.RerankScore{Index: int(index.Int()), Score: score.Float()})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return scores, nil
}

// truncate cuts s to at most maxChars runes. Zero keeps s.
func truncate(s string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars])
}
