package domain

import "time"

// MetadataSnapshot is the job-level payload stored next to every chunk vector.
// It is identical across the chunks of one job.
type MetadataSnapshot struct {
	Title      string     `json:"title,omitempty"`
	Company    string     `json:"company,omitempty"`
	Location   string     `json:"location,omitempty"`
	URL        string     `json:"url,omitempty"`
	Source     string     `json:"source,omitempty"`
	PostedDate *time.Time `json:"posted_date,omitempty"`

	Metadata ExtractedMetadata `json:"metadata"`

	SkillsCount       int  `json:"skills_count"`
	HasSalaryInfo     bool `json:"has_salary_info"`
	HasExperienceInfo bool `json:"has_experience_info"`
}

// NewMetadataSnapshot builds the snapshot for a posting and its metadata.
func NewMetadataSnapshot(job JobPosting, meta ExtractedMetadata) MetadataSnapshot {
	return MetadataSnapshot{
		Title:             job.Title,
		Company:           job.Company,
		Location:          job.Location,
		URL:               job.URL,
		Source:            job.Source,
		PostedDate:        job.PostedDate,
		Metadata:          meta,
		SkillsCount:       len(meta.Skills),
		HasSalaryInfo:     meta.HasSalaryInfo(),
		HasExperienceInfo: meta.HasExperienceInfo(),
	}
}

// ChunkPayload is what the vector store keeps alongside a chunk embedding.
type ChunkPayload struct {
	ParentJobID   string           `json:"parent_job_id"`
	ChunkIndex    int              `json:"chunk_index"`
	ChunkType     ChunkType        `json:"chunk_type"`
	Text          string           `json:"text"`
	SectionHeader string           `json:"section_header,omitempty"`
	Snapshot      MetadataSnapshot `json:"snapshot"`
}

// NewChunkPayload pairs a chunk with its job snapshot.
func NewChunkPayload(c TextChunk, snap MetadataSnapshot) ChunkPayload {
	return ChunkPayload{
		ParentJobID:   c.ParentJobID,
		ChunkIndex:    c.ChunkIndex,
		ChunkType:     c.ChunkType,
		Text:          c.Text,
		SectionHeader: c.SectionHeader,
		Snapshot:      snap,
	}
}

// ChunkSearchHit is a chunk-level result from the vector store.
type ChunkSearchHit struct {
	ChunkID         string
	ParentJobID     string
	SimilarityScore float64
	Payload         ChunkPayload
}

// AggregatedJobResult merges the chunk hits of one job.
type AggregatedJobResult struct {
	JobID                  string           `json:"job_id"`
	AggregateScore         float64          `json:"aggregate_score"`
	CombinedText           string           `json:"combined_text"`
	RepresentativeMetadata MetadataSnapshot `json:"representative_metadata"`
	ChunkCount             int              `json:"chunk_count"`
	ChunkScores            []float64        `json:"chunk_scores"`
	BestChunkType          ChunkType        `json:"best_chunk_type"`
}

// SearchFilterCriteria are the structured constraints of a search.
type SearchFilterCriteria struct {
	Locations       []string        `json:"locations,omitempty" validate:"omitempty,dive,required"`
	RequiredSkills  []string        `json:"required_skills,omitempty" validate:"omitempty,dive,required"`
	PreferredSkills []string        `json:"preferred_skills,omitempty" validate:"omitempty,dive,required"`
	ExcludeKeywords []string        `json:"exclude_keywords,omitempty" validate:"omitempty,dive,required"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior executive"`

	MinExperienceYears *int `json:"min_experience_years,omitempty" validate:"omitempty,gte=0"`
	MaxExperienceYears *int `json:"max_experience_years,omitempty" validate:"omitempty,gte=0"`
	MinSalary          *int `json:"min_salary,omitempty" validate:"omitempty,gte=0"`
	MaxSalary          *int `json:"max_salary,omitempty" validate:"omitempty,gte=0"`

	RemoteOnly    bool `json:"remote_only,omitempty"`
	HasSalaryInfo bool `json:"has_salary_info,omitempty"`

	RequiredEducation []string `json:"required_education,omitempty" validate:"omitempty,dive,required"`
	RequiredBenefits  []string `json:"required_benefits,omitempty" validate:"omitempty,dive,required"`
}

// IsEmpty reports whether no criterion is set.
func (c SearchFilterCriteria) IsEmpty() bool {
	return len(c.Locations) == 0 && len(c.RequiredSkills) == 0 && len(c.PreferredSkills) == 0 &&
		len(c.ExcludeKeywords) == 0 && c.ExperienceLevel == "" &&
		c.MinExperienceYears == nil && c.MaxExperienceYears == nil &&
		c.MinSalary == nil && c.MaxSalary == nil && !c.RemoteOnly && !c.HasSalaryInfo &&
		len(c.RequiredEducation) == 0 && len(c.RequiredBenefits) == 0
}

// FilteredResult is an aggregated result that survived filtering.
type FilteredResult struct {
	AggregatedJobResult
	BoostedScore float64 `json:"boosted_score"`
}

// RerankCandidate is one input to the reranking gateway.
type RerankCandidate struct {
	ID          string
	Text        string
	VectorScore float64
}

// RerankedCandidate is one output of the reranking gateway.
type RerankedCandidate struct {
	ID          string
	Text        string
	VectorScore float64
	CrossScore  float64
}

// RankedResult is a final search result.
type RankedResult struct {
	ID          string           `json:"id"`
	FinalScore  float64          `json:"final_score"`
	VectorScore float64          `json:"vector_score"`
	CrossScore  float64          `json:"cross_score"`
	Text        string           `json:"text"`
	Metadata    MetadataSnapshot `json:"metadata"`
}

// SearchRequest is a query plus structured criteria.
type SearchRequest struct {
	Query    string               `json:"query" validate:"required"`
	Criteria SearchFilterCriteria `json:"criteria"`

	// TopK caps the number of results. Zero uses the configured default.
	TopK int `json:"top_k,omitempty" validate:"gte=0,lte=200"`

	// DisableRerank skips the cross-encoder stage.
	DisableRerank bool `json:"disable_rerank,omitempty"`
}

// SearchResponse carries the ranked results of a search.
type SearchResponse struct {
	Results []RankedResult `json:"results"`

	// CandidatesFound is the number of chunk hits returned by the vector store.
	CandidatesFound int `json:"candidates_found"`

	// Filtered is the number of jobs that survived filtering.
	Filtered int `json:"filtered"`

	// Reranked is true when the cross-encoder ordered the results.
	Reranked bool `json:"reranked"`

	// Degraded is true when reranking was requested but failed or timed out.
	Degraded bool `json:"degraded"`

	// Cached is true when the response came from the result cache.
	Cached bool `json:"cached"`
}
