package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkType_IsValid(t *testing.T) {
	tests := []struct {
		chunkType ChunkType
		valid     bool
	}{
		{ChunkTitle, true},
		{ChunkFull, true},
		{ChunkSegment, true},
		{ChunkRequirements, true},
		{PartChunkType(SectionRequirements), true},
		{PartChunkType(SectionSummary), true},
		{"title_part", false},
		{"segment_part", false},
		{"perks", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.chunkType), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.chunkType.IsValid())
		})
	}
}

func TestChunkType_Parts(t *testing.T) {
	part := PartChunkType(SectionBenefits)
	assert.Equal(t, ChunkType("benefits_part"), part)
	assert.True(t, part.IsPart())
	assert.Equal(t, ChunkBenefits, part.Base())

	assert.False(t, ChunkBenefits.IsPart())
	assert.Equal(t, ChunkBenefits, ChunkTypeForSection(SectionBenefits))
}

func TestChunkID(t *testing.T) {
	assert.Equal(t, "job-1_chunk_0", ChunkID("job-1", 0))
	assert.Equal(t, "job-1_chunk_300", TextChunk{ParentJobID: "job-1", ChunkIndex: 300}.ID())
}

func TestParseChunkID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		job   string
		index int
		ok    bool
	}{
		{"simple", "job-1_chunk_7", "job-1", 7, true},
		{"job id containing marker", "a_chunk_b_chunk_3", "a_chunk_b", 3, true},
		{"no marker", "job-1", "", 0, false},
		{"non numeric index", "job-1_chunk_x", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, index, ok := ParseChunkID(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.job, job)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestChunkingStrategy(t *testing.T) {
	for _, s := range []ChunkingStrategy{StrategySection, StrategyOverlapping, StrategyHybrid} {
		assert.True(t, s.IsValid(), s)
		assert.NotEmpty(t, s.Description(), s)
	}
	assert.False(t, ChunkingStrategy("paragraphs").IsValid())
	assert.Equal(t, "sections", StrategySection.String())
}

func TestProcessingStats_Merge(t *testing.T) {
	var total ProcessingStats
	total.Merge(ProcessingStats{})
	assert.Zero(t, total.TotalChunks)

	total.Merge(ProcessingStats{
		TotalChunks: 2,
		ChunkTypes:  map[ChunkType]int{ChunkRequirements: 2},
		AvgWords:    100,
		AvgQuality:  0.5,
		MinWords:    80,
		MaxWords:    120,
		TotalWords:  200,
	})
	total.Merge(ProcessingStats{
		TotalChunks: 1,
		ChunkTypes:  map[ChunkType]int{ChunkRequirements: 1, ChunkFull: 1},
		AvgWords:    400,
		AvgQuality:  0.8,
		MinWords:    400,
		MaxWords:    400,
		TotalWords:  400,
	})

	assert.Equal(t, 3, total.TotalChunks)
	assert.Equal(t, 3, total.ChunkTypes[ChunkRequirements])
	assert.Equal(t, 1, total.ChunkTypes[ChunkFull])
	assert.InDelta(t, 200.0, total.AvgWords, 1e-9)
	assert.InDelta(t, 0.6, total.AvgQuality, 1e-9)
	assert.Equal(t, 80, total.MinWords)
	assert.Equal(t, 400, total.MaxWords)
	assert.Equal(t, 600, total.TotalWords)
}
