package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	resp    domain.SearchResponse
	err     error
	lastReq domain.SearchRequest
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (domain.SearchResponse, error) {
	m.lastReq = req
	return m.resp, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	report    domain.IndexReport
	err       error
	indexed   [][]domain.JobPosting
	lastOpts  domain.IndexOptions
	processed []domain.JobPosting
	metadata  domain.ExtractedMetadata
}

func (m *mockIndexService) IndexJobs(_ context.Context, jobs []domain.JobPosting, opts domain.IndexOptions) (domain.IndexReport, error) {
	m.indexed = append(m.indexed, jobs)
	m.lastOpts = opts
	return m.report, m.err
}

func (m *mockIndexService) ProcessJob(_ context.Context, job domain.JobPosting, _ domain.ChunkingStrategy) domain.ProcessedJob {
	m.processed = append(m.processed, job)
	return domain.ProcessedJob{
		Job:      job,
		Metadata: m.metadata,
		Chunks:   []domain.TextChunk{{ParentJobID: job.ID, ChunkType: domain.ChunkSegment, Text: job.RawText, WordCount: 2}},
	}
}

func (m *mockIndexService) GetJob(_ context.Context, id string) (*domain.JobPosting, error) {
	return nil, domain.ErrNotFound
}

func (m *mockIndexService) Stats(_ context.Context) (domain.JobStats, error) {
	return domain.JobStats{}, m.err
}

type testServices struct {
	search *mockSearchService
	index  *mockIndexService
	cfg    *domain.Config
}

// setupTestServices swaps the app builder for mocks and returns a cleanup func.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		search: &mockSearchService{},
		index:  &mockIndexService{},
	}
	original := openApp
	openApp = func(_ context.Context, overrides ...func(*domain.Config)) (*App, error) {
		cfg := domain.DefaultConfig()
		for _, o := range overrides {
			o(&cfg)
		}
		ts.cfg = &cfg
		return &App{Config: cfg, Index: ts.index, Search: ts.search}, nil
	}
	return ts, func() { openApp = original }
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "sercha-jobs", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "v", flag.Shorthand)

	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"index", "search", "extract", "watch", "config", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestApp_CloseRunsInReverse(t *testing.T) {
	var order []int
	app := &App{}
	app.onClose(func() error { order = append(order, 1); return nil })
	app.onClose(func() error { order = append(order, 2); return assert.AnError })

	err := app.Close()
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, app.Close())
}

func TestBuildApp_InMemory(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Storage.Dir = ":memory:"
	cfg.VectorStore.Backend = domain.VectorBackendMemory

	app, err := buildApp(context.Background(), cfg, t.TempDir())
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Index)
	assert.NotNil(t, app.Search)

	stats, err := app.Index.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Jobs)
}

func TestBuildApp_LLMExtractorNeedsLLM(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Storage.Dir = ":memory:"
	cfg.VectorStore.Backend = domain.VectorBackendMemory
	cfg.Extractor.Kind = domain.ExtractorLLM

	_, err := buildApp(context.Background(), cfg, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestConfigMapping(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Indexing.Workers = 3
	cfg.Search.TopK = 7

	ic := indexConfig(cfg)
	assert.Equal(t, domain.StrategyHybrid, ic.Strategy)
	assert.Equal(t, 32, ic.BatchSize)
	assert.Equal(t, 3, ic.Workers)
	assert.Equal(t, 3, ic.Retry.MaxRetries)
	assert.Equal(t, 10.0, ic.RequestsPerSecond)

	sc := searchConfig(cfg)
	assert.Equal(t, 100, sc.CandidatePoolSize)
	assert.Equal(t, 7, sc.TopK)
	assert.Equal(t, 0.6, sc.VectorShare)
}
