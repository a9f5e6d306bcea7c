package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// RerankOutcome is the result of a reranking attempt.
type RerankOutcome struct {
	Candidates []domain.RerankedCandidate

	// Reranked is true when the cross-encoder ordered the candidates.
	Reranked bool

	// Degraded is true when the reranker was asked and failed.
	Degraded bool
}

// RerankGateway orders candidates with an external cross-encoder and
// falls back to the incoming order when it is unavailable.
type RerankGateway struct {
	reranker driven.Reranker
}

// NewRerankGateway creates a gateway. A nil reranker disables reranking.
func NewRerankGateway(reranker driven.Reranker) *RerankGateway {
	return &RerankGateway{reranker: reranker}
}

// Enabled reports whether a reranker is configured.
func (g *RerankGateway) Enabled() bool {
	return g.reranker != nil
}

// Rerank returns at most topK candidates. Candidates must already be in
// fallback order and carry the job's combined text. A topK of zero or
// less keeps every candidate.
func (g *RerankGateway) Rerank(ctx context.Context, query string, candidates []domain.RerankCandidate, topK int) RerankOutcome {
	n := len(candidates)
	if topK > 0 && topK < n {
		n = topK
	}

	if g.reranker == nil || len(candidates) < 2 {
		return RerankOutcome{Candidates: fallback(candidates, n)}
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = c.Text
	}

	scores, err := g.reranker.Score(ctx, query, docs)
	if err == nil {
		err = checkScores(scores, len(candidates))
	}
	if err != nil {
		logger.Warn("reranker %s unavailable, using filter order: %v", g.reranker.ModelName(), err)
		return RerankOutcome{Candidates: fallback(candidates, n), Degraded: true}
	}

	out := make([]domain.RerankedCandidate, len(candidates))
	for _, s := range scores {
		c := candidates[s.Index]
		out[s.Index] = domain.RerankedCandidate{
			ID:          c.ID,
			Text:        c.Text,
			VectorScore: c.VectorScore,
			CrossScore:  s.Score,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CrossScore > out[j].CrossScore
	})

	logger.Debug("Reranked %d candidates with %s", len(candidates), g.reranker.ModelName())
	return RerankOutcome{Candidates: out[:n], Reranked: true}
}

// checkScores requires exactly one score per candidate.
func checkScores(scores []driven.RerankScore, n int) error {
	if len(scores) != n {
		return fmt.Errorf("%w: got %d scores for %d documents", domain.ErrRerankerUnavailable, len(scores), n)
	}
	seen := make([]bool, n)
	for _, s := range scores {
		if s.Index < 0 || s.Index >= n || seen[s.Index] {
			return fmt.Errorf("%w: invalid score index %d", domain.ErrRerankerUnavailable, s.Index)
		}
		seen[s.Index] = true
	}
	return nil
}

func fallback(candidates []domain.RerankCandidate, n int) []domain.RerankedCandidate {
	out := make([]domain.RerankedCandidate, n)
	for i := 0; i < n; i++ {
		c := candidates[i]
		out[i] = domain.RerankedCandidate{
			ID:          c.ID,
			Text:        c.Text,
			VectorScore: c.VectorScore,
			CrossScore:  c.VectorScore,
		}
	}
	return out
}
