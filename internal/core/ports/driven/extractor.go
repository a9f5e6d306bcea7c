package driven

import (
	"context"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// MetadataExtractor derives structured attributes from cleaned posting text.
// Implementations never fail: categories that cannot be extracted are left empty.
type MetadataExtractor interface {
	Extract(ctx context.Context, cleanedText string) domain.ExtractedMetadata

	// Name identifies the implementation in logs and config.
	Name() string
}
