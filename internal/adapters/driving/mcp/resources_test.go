package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

func TestExtractJobID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid job URI",
			uri:      "sercha-jobs://jobs/job-42",
			expected: "job-42",
		},
		{
			name:     "invalid prefix",
			uri:      "file://jobs/job-42",
			expected: "",
		},
		{
			name:     "other resource",
			uri:      "sercha-jobs://stats",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJobID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stats as JSON", func(t *testing.T) {
		index := &mockIndexService{stats: domain.JobStats{Jobs: 2, Chunks: 7}}
		server := newTestServer(t, &mockSearchService{}, index)

		result, err := server.handleStatsResource(ctx, makeReadResourceRequest("sercha-jobs://stats"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"jobs": 2`)
		assert.Contains(t, result.Contents[0].Text, `"chunks": 7`)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockIndexService{err: errors.New("db closed")})

		_, err := server.handleStatsResource(ctx, makeReadResourceRequest("sercha-jobs://stats"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db closed")
	})
}

func TestServer_handleJobResource(t *testing.T) {
	ctx := context.Background()
	index := &mockIndexService{jobs: map[string]domain.JobPosting{
		"job-1": {ID: "job-1", Title: "Data Engineer", RawText: "Spark and SQL"},
	}}
	server := newTestServer(t, &mockSearchService{}, index)

	t.Run("returns stored posting", func(t *testing.T) {
		result, err := server.handleJobResource(ctx, makeReadResourceRequest("sercha-jobs://jobs/job-1"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "sercha-jobs://jobs/job-1", result.Contents[0].URI)
		assert.Contains(t, result.Contents[0].Text, "Data Engineer")
	})

	t.Run("unknown job is not found", func(t *testing.T) {
		_, err := server.handleJobResource(ctx, makeReadResourceRequest("sercha-jobs://jobs/missing"))
		require.Error(t, err)
		assert.Contains(t, strings.ToLower(err.Error()), "not found")
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		_, err := server.handleJobResource(ctx, makeReadResourceRequest("sercha-jobs://invalid"))
		require.Error(t, err)
	})
}
