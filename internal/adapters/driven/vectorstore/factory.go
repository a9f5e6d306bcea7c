// Package vectorstore selects a vector store backend from configuration.
package vectorstore

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/vectorstore/postgres"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/vectorstore/qdrant"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Open creates the configured vector store. The sqlite backend shares db,
// which must be non-nil for it.
func Open(ctx context.Context, settings domain.VectorStoreSettings, db *sqlite.Store) (driven.VectorStore, error) {
	switch settings.Backend {
	case domain.VectorBackendMemory:
		return memory.NewVectorStore(), nil

	case domain.VectorBackendSQLite, "":
		if db == nil {
			return nil, fmt.Errorf("%w: sqlite vector store needs a database", domain.ErrInvalidConfig)
		}
		return db.VectorStore(), nil

	case domain.VectorBackendQdrant:
		return qdrant.New(qdrant.Config{
			URL:        settings.URL,
			APIKey:     settings.APIKey,
			Collection: settings.Collection,
		})

	case domain.VectorBackendPostgres:
		return postgres.Connect(ctx, settings.DSN, settings.Collection)

	default:
		return nil, fmt.Errorf("%w: unsupported vector store backend: %s", domain.ErrInvalidConfig, settings.Backend)
	}
}
