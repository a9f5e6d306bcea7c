package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchConfig tunes query-time behaviour.
type SearchConfig struct {
	// CandidatePoolSize is the number of chunk hits requested from the vector store.
	CandidatePoolSize int

	// TopK is the result count when a request does not set one.
	TopK int

	// Timeout is the total budget for vector search and reranking.
	Timeout time.Duration

	// VectorShare is the fraction of Timeout given to embedding and vector search.
	VectorShare float64
}

// DefaultSearchConfig returns the default search settings.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		CandidatePoolSize: 100,
		TopK:              10,
		Timeout:           10 * time.Second,
		VectorShare:       0.6,
	}
}

// SearchService runs vector search, aggregation, filtering and reranking.
type SearchService struct {
	embedder   driven.EmbeddingService
	vectors    driven.VectorStore
	aggregator *Aggregator
	filter     *FilterEngine
	gateway    *RerankGateway
	cache      driven.ResultCache
	validate   *validator.Validate
	cfg        SearchConfig
}

// NewSearchService creates a search service.
// The reranker and cache are optional (can be nil).
func NewSearchService(
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	filter *FilterEngine,
	reranker driven.Reranker,
	cache driven.ResultCache,
	cfg SearchConfig,
) *SearchService {
	def := DefaultSearchConfig()
	if cfg.CandidatePoolSize <= 0 {
		cfg.CandidatePoolSize = def.CandidatePoolSize
	}
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.VectorShare <= 0 || cfg.VectorShare >= 1 {
		cfg.VectorShare = def.VectorShare
	}
	if filter == nil {
		filter = NewFilterEngine()
	}
	return &SearchService{
		embedder:   embedder,
		vectors:    vectors,
		aggregator: NewAggregator(),
		filter:     filter,
		gateway:    NewRerankGateway(reranker),
		cache:      cache,
		validate:   validator.New(),
		cfg:        cfg,
	}
}

// Search answers a query with ranked job results.
// A failed vector search is returned as a ServiceError of kind
// KindUnavailable. A failed reranker only marks the response degraded.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error) {
	logger.Section("Search Execution")
	req.Query = strings.TrimSpace(req.Query)
	if err := s.validateRequest(req); err != nil {
		return domain.SearchResponse{}, domain.NewServiceError("search", domain.KindInvalid, err)
	}
	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.TopK
	}
	logger.Debug("Query: %q, topK: %d", req.Query, topK)

	key := CacheKey(req, topK)
	if resp, ok := s.cached(ctx, key); ok {
		return resp, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	hits, err := s.vectorSearch(ctx, req)
	if err != nil {
		return domain.SearchResponse{}, domain.NewServiceError("search", domain.KindUnavailable, err)
	}

	aggregated := s.aggregator.Aggregate(hits)
	filtered := s.filter.Filter(aggregated, req.Criteria)

	byID := make(map[string]domain.FilteredResult, len(filtered))
	candidates := make([]domain.RerankCandidate, len(filtered))
	for i, f := range filtered {
		byID[f.JobID] = f
		candidates[i] = domain.RerankCandidate{ID: f.JobID, Text: f.CombinedText, VectorScore: f.BoostedScore}
	}

	gateway := s.gateway
	if req.DisableRerank {
		gateway = NewRerankGateway(nil)
	}
	outcome := gateway.Rerank(ctx, req.Query, candidates, topK)

	resp := domain.SearchResponse{
		Results:         make([]domain.RankedResult, len(outcome.Candidates)),
		CandidatesFound: len(hits),
		Filtered:        len(filtered),
		Reranked:        outcome.Reranked,
		Degraded:        outcome.Degraded,
	}
	for i, c := range outcome.Candidates {
		final := byID[c.ID].BoostedScore
		if outcome.Reranked {
			final = c.CrossScore
		}
		resp.Results[i] = domain.RankedResult{
			ID:          c.ID,
			FinalScore:  final,
			VectorScore: c.VectorScore,
			CrossScore:  c.CrossScore,
			Text:        c.Text,
			Metadata:    byID[c.ID].RepresentativeMetadata,
		}
	}

	logger.Debug("Search: %d hits, %d jobs, %d filtered, %d returned", len(hits), len(aggregated), len(filtered), len(resp.Results))
	if !resp.Degraded {
		s.store(ctx, key, resp)
	}
	return resp, nil
}

// vectorSearch embeds the query and fetches the candidate pool within
// the vector share of the time budget.
func (s *SearchService) vectorSearch(ctx context.Context, req domain.SearchRequest) ([]domain.ChunkSearchHit, error) {
	budget := time.Duration(float64(s.cfg.Timeout) * s.cfg.VectorShare)
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	embedding, err := s.embedder.Embed(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	var filter *driven.VectorFilter
	if req.Criteria.RemoteOnly {
		filter = &driven.VectorFilter{RemoteOnly: true}
	}
	hits, err := s.vectors.Query(ctx, embedding, s.cfg.CandidatePoolSize, filter)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}
	return hits, nil
}

func (s *SearchService) validateRequest(req domain.SearchRequest) error {
	if req.Query == "" {
		return fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	c := req.Criteria
	if c.MinExperienceYears != nil && c.MaxExperienceYears != nil && *c.MinExperienceYears > *c.MaxExperienceYears {
		return fmt.Errorf("min experience years above max: %w", domain.ErrInvalidInput)
	}
	if c.MinSalary != nil && c.MaxSalary != nil && *c.MinSalary > *c.MaxSalary {
		return fmt.Errorf("min salary above max: %w", domain.ErrInvalidInput)
	}
	return nil
}

func (s *SearchService) cached(ctx context.Context, key string) (domain.SearchResponse, bool) {
	if s.cache == nil {
		return domain.SearchResponse{}, false
	}
	resp, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("result cache read: %v", err)
		return domain.SearchResponse{}, false
	}
	if !ok || resp == nil {
		return domain.SearchResponse{}, false
	}
	logger.Debug("Cache hit for %s", key)
	out := *resp
	out.Cached = true
	return out, true
}

func (s *SearchService) store(ctx context.Context, key string, resp domain.SearchResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(context.WithoutCancel(ctx), key, resp); err != nil {
		logger.Warn("result cache write: %v", err)
	}
}

// CacheKey derives a deterministic key from the normalised query,
// criteria and result count.
func CacheKey(req domain.SearchRequest, topK int) string {
	c := req.Criteria
	c.Locations = normaliseList(c.Locations)
	c.RequiredSkills = normaliseList(c.RequiredSkills)
	c.PreferredSkills = normaliseList(c.PreferredSkills)
	c.ExcludeKeywords = normaliseList(c.ExcludeKeywords)
	c.RequiredEducation = normaliseList(c.RequiredEducation)
	c.RequiredBenefits = normaliseList(c.RequiredBenefits)

	payload, _ := json.Marshal(struct {
		Query    string                      `json:"q"`
		Criteria domain.SearchFilterCriteria `json:"c"`
		TopK     int                         `json:"k"`
		NoRerank bool                        `json:"r"`
	}{
		Query:    strings.Join(strings.Fields(strings.ToLower(req.Query)), " "),
		Criteria: c,
		TopK:     topK,
		NoRerank: req.DisableRerank,
	})
	sum := sha256.Sum256(payload)
	return "search:" + hex.EncodeToString(sum[:])
}

func normaliseList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := distinct(values)
	sort.Strings(out)
	return out
}
