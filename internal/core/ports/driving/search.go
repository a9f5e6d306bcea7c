package driving

import (
	"context"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// SearchService runs queries against indexed postings.
type SearchService interface {
	// Search embeds the query, aggregates chunk hits into jobs, applies the
	// criteria and reranks. A vector store failure is returned as an error
	// matching domain.ErrServiceUnavailable; a reranker failure is not an error.
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error)
}
