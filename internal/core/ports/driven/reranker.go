package driven

import "context"

// RerankScore is the cross-encoder score for one candidate.
type RerankScore struct {
	// Index is the position of the candidate in the request.
	Index int

	Score float64
}

// Reranker scores documents against a query with a cross-encoder.
// Callers fall back to their own ordering when it returns an error.
type Reranker interface {
	// Score returns one score per document. Order of the result is unspecified.
	Score(ctx context.Context, query string, documents []string) ([]RerankScore, error)

	// ModelName returns the model identifier for logging.
	ModelName() string
}
