package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/postprocessors/chunker"
)

// scratchJobID names the throwaway posting built from extract_metadata text.
const scratchJobID = "mcp-extract"

// SearchJobsInput is the input schema for the search_jobs tool.
type SearchJobsInput struct {
	Query string `json:"query" jsonschema:"free-text description of the job being looked for"`

	Locations       []string `json:"locations,omitempty" jsonschema:"keep jobs in any of these locations"`
	RequiredSkills  []string `json:"required_skills,omitempty" jsonschema:"keep jobs mentioning every one of these skills"`
	PreferredSkills []string `json:"preferred_skills,omitempty" jsonschema:"boost jobs mentioning these skills"`
	ExcludeKeywords []string `json:"exclude_keywords,omitempty" jsonschema:"drop jobs whose text contains any of these"`
	ExperienceLevel string   `json:"experience_level,omitempty" jsonschema:"one of entry, mid, senior, executive"`

	MinExperienceYears *int `json:"min_experience_years,omitempty" jsonschema:"minimum years of experience the job asks for"`
	MaxExperienceYears *int `json:"max_experience_years,omitempty" jsonschema:"maximum years of experience the job asks for"`
	MinSalary          *int `json:"min_salary,omitempty" jsonschema:"lowest acceptable salary"`
	MaxSalary          *int `json:"max_salary,omitempty" jsonschema:"highest acceptable salary"`

	RemoteOnly    bool `json:"remote_only,omitempty" jsonschema:"keep only remote jobs"`
	HasSalaryInfo bool `json:"has_salary_info,omitempty" jsonschema:"keep only jobs that state a salary"`

	RequiredEducation []string `json:"required_education,omitempty" jsonschema:"keep jobs mentioning any of these degrees"`
	RequiredBenefits  []string `json:"required_benefits,omitempty" jsonschema:"keep jobs offering every one of these benefits"`

	TopK          int  `json:"top_k,omitempty" jsonschema:"maximum number of jobs to return (default 10)"`
	DisableRerank bool `json:"disable_rerank,omitempty" jsonschema:"skip the cross-encoder and keep vector order"`
}

// criteria converts the flat tool input to filter criteria.
func (in SearchJobsInput) criteria() domain.SearchFilterCriteria {
	return domain.SearchFilterCriteria{
		Locations:          in.Locations,
		RequiredSkills:     in.RequiredSkills,
		PreferredSkills:    in.PreferredSkills,
		ExcludeKeywords:    in.ExcludeKeywords,
		ExperienceLevel:    domain.ExperienceLevel(strings.ToLower(in.ExperienceLevel)),
		MinExperienceYears: in.MinExperienceYears,
		MaxExperienceYears: in.MaxExperienceYears,
		MinSalary:          in.MinSalary,
		MaxSalary:          in.MaxSalary,
		RemoteOnly:         in.RemoteOnly,
		HasSalaryInfo:      in.HasSalaryInfo,
		RequiredEducation:  in.RequiredEducation,
		RequiredBenefits:   in.RequiredBenefits,
	}
}

// SearchJobsOutput is the output schema for the search_jobs tool.
type SearchJobsOutput struct {
	Results  []JobResultOutput `json:"results"`
	Count    int               `json:"count"`
	Reranked bool              `json:"reranked"`
	Degraded bool              `json:"degraded"`
}

// JobResultOutput is one ranked job.
type JobResultOutput struct {
	JobID       string                   `json:"job_id"`
	Title       string                   `json:"title,omitempty"`
	Company     string                   `json:"company,omitempty"`
	Location    string                   `json:"location,omitempty"`
	URL         string                   `json:"url,omitempty"`
	Score       float64                  `json:"score"`
	VectorScore float64                  `json:"vector_score"`
	Metadata    domain.ExtractedMetadata `json:"metadata"`
	Text        string                   `json:"text,omitempty"`
}

// ExtractMetadataInput is the input schema for the extract_metadata tool.
type ExtractMetadataInput struct {
	Text string `json:"text" jsonschema:"raw posting text, plain or HTML"`
}

// ExtractMetadataOutput is the output schema for the extract_metadata tool.
type ExtractMetadataOutput struct {
	Metadata domain.ExtractedMetadata `json:"metadata"`
	Chunks   int                      `json:"chunks"`
	Stats    domain.ProcessingStats   `json:"stats"`
}

// IndexStatsInput is the empty input of the index_stats tool.
type IndexStatsInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_jobs",
		Description: "Search indexed job postings by meaning, with optional structured filters",
	}, s.handleSearchJobs)

	if s.ports.Index == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_metadata",
		Description: "Extract skills, experience, salary, remote work, locations, education and benefits from posting text",
	}, s.handleExtractMetadata)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_stats",
		Description: "Report how many jobs and chunks are indexed and the last indexing run",
	}, s.handleIndexStats)
}

// handleSearchJobs handles the search_jobs tool invocation.
func (s *Server) handleSearchJobs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchJobsInput,
) (*mcp.CallToolResult, SearchJobsOutput, error) {
	resp, err := s.ports.Search.Search(ctx, domain.SearchRequest{
		Query:         input.Query,
		Criteria:      input.criteria(),
		TopK:          input.TopK,
		DisableRerank: input.DisableRerank,
	})
	if err != nil {
		return nil, SearchJobsOutput{}, err
	}

	output := SearchJobsOutput{
		Results:  make([]JobResultOutput, len(resp.Results)),
		Count:    len(resp.Results),
		Reranked: resp.Reranked,
		Degraded: resp.Degraded,
	}

	for i := range resp.Results {
		r := resp.Results[i]
		output.Results[i] = JobResultOutput{
			JobID:       r.ID,
			Title:       r.Metadata.Title,
			Company:     r.Metadata.Company,
			Location:    r.Metadata.Location,
			URL:         r.Metadata.URL,
			Score:       r.FinalScore,
			VectorScore: r.VectorScore,
			Metadata:    r.Metadata.Metadata,
			Text:        r.Text,
		}
	}

	return nil, output, nil
}

// handleExtractMetadata runs cleaning, chunking and extraction without indexing.
func (s *Server) handleExtractMetadata(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractMetadataInput,
) (*mcp.CallToolResult, ExtractMetadataOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ExtractMetadataOutput{}, fmt.Errorf("text: %w", domain.ErrInvalidInput)
	}

	processed := s.ports.Index.ProcessJob(ctx, domain.JobPosting{ID: scratchJobID, RawText: input.Text}, "")
	return nil, ExtractMetadataOutput{
		Metadata: processed.Metadata,
		Chunks:   len(processed.Chunks),
		Stats:    chunker.Stats(processed.Chunks),
	}, nil
}

// handleIndexStats reports corpus counts.
func (s *Server) handleIndexStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IndexStatsInput,
) (*mcp.CallToolResult, domain.JobStats, error) {
	stats, err := s.ports.Index.Stats(ctx)
	if err != nil {
		return nil, domain.JobStats{}, fmt.Errorf("index stats: %w", err)
	}
	return nil, stats, nil
}
