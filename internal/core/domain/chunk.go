package domain

import (
	"fmt"
	"strings"
)

// ChunkType identifies what part of a posting a chunk was cut from.
type ChunkType string

// Chunk types. Section types double as chunk types for section chunks.
const (
	ChunkTitle            ChunkType = "title"
	ChunkSummary          ChunkType = "summary"
	ChunkResponsibilities ChunkType = "responsibilities"
	ChunkRequirements     ChunkType = "requirements"
	ChunkBenefits         ChunkType = "benefits"
	ChunkAbout            ChunkType = "about"
	ChunkLocation         ChunkType = "location"

	// ChunkFull holds the whole cleaned document as a retrieval fallback.
	ChunkFull ChunkType = "full"

	// ChunkSegment is a sliding-window chunk from the overlapping strategy.
	ChunkSegment ChunkType = "segment"
)

const partSuffix = "_part"

// ChunkTypeForSection returns the chunk type for a whole section.
func ChunkTypeForSection(s SectionType) ChunkType {
	return ChunkType(s)
}

// PartChunkType returns the chunk type for a piece of an oversized section.
func PartChunkType(s SectionType) ChunkType {
	return ChunkType(string(s) + partSuffix)
}

// IsPart reports whether the chunk is a piece of an oversized section.
func (c ChunkType) IsPart() bool {
	return strings.HasSuffix(string(c), partSuffix)
}

// Base strips the "_part" suffix.
func (c ChunkType) Base() ChunkType {
	return ChunkType(strings.TrimSuffix(string(c), partSuffix))
}

// IsValid returns true for known chunk types and their part variants.
func (c ChunkType) IsValid() bool {
	switch c.Base() {
	case ChunkTitle, ChunkFull, ChunkSegment:
		return !c.IsPart()
	default:
		return SectionType(c.Base()).IsValid()
	}
}

// String returns the string representation.
func (c ChunkType) String() string {
	return string(c)
}

// TextChunk is an independently embeddable unit of a posting.
// Identity is (ParentJobID, ChunkIndex) and is stable across reprocessing.
type TextChunk struct {
	ParentJobID string    `json:"parent_job_id"`
	ChunkIndex  int       `json:"chunk_index"`
	ChunkType   ChunkType `json:"chunk_type"`
	Text        string    `json:"text"`
	WordCount   int       `json:"word_count"`

	// ConfidenceScore is the chunk quality in [0, 1].
	ConfidenceScore float64 `json:"confidence_score"`

	SectionHeader string `json:"section_header,omitempty"`

	// OverlapStart and OverlapEnd are the chunk's word span [start, end).
	// Segments count from the start of the document, section parts from the
	// start of their section. Other chunks leave both zero.
	OverlapStart int `json:"overlap_start,omitempty"`
	OverlapEnd   int `json:"overlap_end,omitempty"`
}

// ID returns the vector store identifier of the chunk.
func (c TextChunk) ID() string {
	return ChunkID(c.ParentJobID, c.ChunkIndex)
}

// ChunkID formats the vector store identifier for a chunk.
func ChunkID(jobID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", jobID, index)
}

// ParseChunkID splits a chunk identifier into job ID and index.
func ParseChunkID(id string) (jobID string, index int, ok bool) {
	i := strings.LastIndex(id, "_chunk_")
	if i < 0 {
		return "", 0, false
	}
	if _, err := fmt.Sscanf(id[i+len("_chunk_"):], "%d", &index); err != nil {
		return "", 0, false
	}
	return id[:i], index, true
}

// ChunkingStrategy selects how a cleaned document is cut into chunks.
type ChunkingStrategy string

// Available chunking strategies.
const (
	// StrategySection emits one chunk per identified section plus a full fallback.
	StrategySection ChunkingStrategy = "sections"

	// StrategyOverlapping slides a fixed word window across the document.
	StrategyOverlapping ChunkingStrategy = "overlapping"

	// StrategyHybrid dispatches to sections when more than one section type is found.
	StrategyHybrid ChunkingStrategy = "hybrid"
)

// IsValid returns true if the strategy is recognised.
func (s ChunkingStrategy) IsValid() bool {
	switch s {
	case StrategySection, StrategyOverlapping, StrategyHybrid:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ChunkingStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s ChunkingStrategy) Description() string {
	switch s {
	case StrategySection:
		return "Sections (one chunk per section, full-text fallback)"
	case StrategyOverlapping:
		return "Overlapping (sliding word window)"
	case StrategyHybrid:
		return "Hybrid (sections when structured, otherwise overlapping)"
	default:
		return "Unknown"
	}
}

// ProcessingStats summarises a set of chunks.
type ProcessingStats struct {
	TotalChunks int               `json:"total_chunks"`
	ChunkTypes  map[ChunkType]int `json:"chunk_types"`
	AvgWords    float64           `json:"avg_words_per_chunk"`
	AvgQuality  float64           `json:"avg_quality_score"`
	MinWords    int               `json:"min_words"`
	MaxWords    int               `json:"max_words"`
	TotalWords  int               `json:"total_words"`
}

// Merge folds other into s. Averages are weighted by chunk count.
func (s *ProcessingStats) Merge(other ProcessingStats) {
	if other.TotalChunks == 0 {
		return
	}
	if s.ChunkTypes == nil {
		s.ChunkTypes = make(map[ChunkType]int)
	}
	for t, n := range other.ChunkTypes {
		s.ChunkTypes[t] += n
	}
	total := s.TotalChunks + other.TotalChunks
	s.AvgWords = (s.AvgWords*float64(s.TotalChunks) + other.AvgWords*float64(other.TotalChunks)) / float64(total)
	s.AvgQuality = (s.AvgQuality*float64(s.TotalChunks) + other.AvgQuality*float64(other.TotalChunks)) / float64(total)
	if s.TotalChunks == 0 || other.MinWords < s.MinWords {
		s.MinWords = other.MinWords
	}
	if other.MaxWords > s.MaxWords {
		s.MaxWords = other.MaxWords
	}
	s.TotalWords += other.TotalWords
	s.TotalChunks = total
}
