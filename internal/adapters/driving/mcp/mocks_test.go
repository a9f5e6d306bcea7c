package mcp

import (
	"context"

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
	processed domain.ProcessedJob
	lastJob   domain.JobPosting
	jobs      map[string]domain.JobPosting
	stats     domain.JobStats
	err       error
}

func (m *mockIndexService) IndexJobs(_ context.Context, _ []domain.JobPosting, _ domain.IndexOptions) (domain.IndexReport, error) {
	return domain.IndexReport{}, m.err
}

func (m *mockIndexService) ProcessJob(_ context.Context, job domain.JobPosting, _ domain.ChunkingStrategy) domain.ProcessedJob {
	m.lastJob = job
	return m.processed
}

func (m *mockIndexService) GetJob(_ context.Context, id string) (*domain.JobPosting, error) {
	if m.err != nil {
		return nil, m.err
	}
	job, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}

func (m *mockIndexService) Stats(_ context.Context) (domain.JobStats, error) {
	return m.stats, m.err
}
