package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/ai"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-jobs/internal/adapters/driven/vectorstore"
	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-jobs/internal/core/services"
	"github.com/custodia-labs/sercha-jobs/internal/extractors"
	"github.com/custodia-labs/sercha-jobs/internal/extractors/llm"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
	"github.com/custodia-labs/sercha-jobs/internal/normalisers/jobtext"
	"github.com/custodia-labs/sercha-jobs/internal/postprocessors/chunker"
)

// App holds the services a command runs against.
type App struct {
	Config domain.Config
	Index  driving.IndexService
	Search driving.SearchService

	closers []func() error
}

// Close releases everything the app opened, last opened first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// openApp builds the services from the effective configuration after
// applying overrides from command flags. Tests replace it.
var openApp = func(ctx context.Context, overrides ...func(*domain.Config)) (*App, error) {
	cfg, store, err := loadConfig()
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	return buildApp(ctx, cfg, filepath.Join(filepath.Dir(store.Path()), "prompts"))
}

// buildApp wires storage, AI adapters and core services for cfg.
func buildApp(ctx context.Context, cfg domain.Config, promptDir string) (*App, error) {
	app := &App{Config: cfg}

	db, err := sqlite.NewStore(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}
	app.onClose(db.Close)

	svcs, err := ai.NewServices(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.onClose(func() error {
		svcs.Close()
		return nil
	})

	vectors, err := vectorstore.Open(ctx, cfg.VectorStore, db)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open vector store: %w", err)
	}
	app.onClose(vectors.Close)

	prompts, err := file.NewPromptStore(promptDir, llm.DefaultPrompts())
	if err != nil {
		app.Close()
		return nil, err
	}

	extractor, err := extractors.NewDefaultRegistry().Build(cfg.Extractor.Kind, extractors.Dependencies{
		LLM:     svcs.LLM,
		Timeout: cfg.Extractor.Timeout.Std(),
		Prompts: prompts,
	})
	if err != nil {
		app.Close()
		return nil, err
	}

	chunks, err := chunker.NewFromSettings(cfg.Chunking)
	if err != nil {
		app.Close()
		return nil, err
	}

	var jobs driven.JobStore = db.JobStore()
	if cfg.Storage.InMemory() {
		jobs = memory.NewJobStore()
	}

	app.Index = services.NewIndexService(
		jobtext.New(),
		chunks,
		extractor,
		svcs.Embedding,
		vectors,
		jobs,
		indexConfig(cfg),
	)

	app.Search = services.NewSearchService(
		svcs.Embedding,
		vectors,
		services.NewFilterEngine(services.WithCandidateCap(cfg.Search.CandidateCap)),
		svcs.Reranker,
		memory.NewResultCache(cfg.Search.CacheSize, cfg.Search.CacheTTL.Std()),
		searchConfig(cfg),
	)

	logger.Debug("app ready: store=%s vectors=%s extractor=%s", db.Path(), cfg.VectorStore.Backend, extractor.Name())
	return app, nil
}

func indexConfig(cfg domain.Config) services.IndexConfig {
	return services.IndexConfig{
		Strategy:  cfg.Chunking.Strategy,
		BatchSize: cfg.Indexing.BatchSize,
		Workers:   cfg.Indexing.Workers,
		Retry: services.RetryPolicy{
			MaxRetries:  cfg.Indexing.MaxRetries,
			BaseBackoff: cfg.Indexing.BaseBackoff.Std(),
			MaxBackoff:  cfg.Indexing.MaxBackoff.Std(),
		},
		RequestsPerSecond: cfg.Indexing.RequestsPerSecond,
	}
}

func searchConfig(cfg domain.Config) services.SearchConfig {
	return services.SearchConfig{
		CandidatePoolSize: cfg.Search.CandidatePoolSize,
		TopK:              cfg.Search.TopK,
		Timeout:           cfg.Search.Timeout.Std(),
		VectorShare:       cfg.Search.VectorShare,
	}
}
