// Package chunker cuts cleaned job posting text into ordered, typed and
// quality-scored chunks under one of three strategies.
package chunker

import (
	"fmt"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
	"github.com/custodia-labs/sercha-jobs/internal/postprocessors/sections"
)

// Chunker produces chunks from cleaned text. Sizes are in words.
// It holds only configuration and is safe for concurrent use.
type Chunker struct {
	maxChunkSize int
	overlapSize  int
	minChunkSize int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChunkSize sets the maximum words per chunk.
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) {
		c.maxChunkSize = size
	}
}

// WithOverlap sets the number of words shared by neighbouring windows.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlapSize = overlap
	}
}

// WithMinChunkSize sets the minimum words for a chunk to be kept.
func WithMinChunkSize(size int) Option {
	return func(c *Chunker) {
		c.minChunkSize = size
	}
}

// New creates a chunker. Invalid sizes, such as a minimum above the
// maximum, return an error wrapping domain.ErrInvalidConfig.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		maxChunkSize: domain.DefaultMaxChunkSize,
		overlapSize:  domain.DefaultOverlapSize,
		minChunkSize: domain.DefaultMinChunkSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.Settings().Validate(); err != nil {
		return nil, fmt.Errorf("chunker: %w", err)
	}

	return c, nil
}

// NewFromSettings creates a chunker from configured settings.
func NewFromSettings(s domain.ChunkingSettings) (*Chunker, error) {
	return New(
		WithMaxChunkSize(s.MaxChunkSize),
		WithOverlap(s.OverlapSize),
		WithMinChunkSize(s.MinChunkSize),
	)
}

// Settings returns the chunker's sizes.
func (c *Chunker) Settings() domain.ChunkingSettings {
	return domain.ChunkingSettings{
		MaxChunkSize: c.maxChunkSize,
		OverlapSize:  c.overlapSize,
		MinChunkSize: c.minChunkSize,
	}
}

// Name returns the processor name.
func (c *Chunker) Name() string {
	return "chunker"
}

// Chunk cuts text into chunks for jobID. Low quality chunks are dropped.
// It never fails: empty text or an unknown strategy give no chunks.
func (c *Chunker) Chunk(text, jobID string, strategy domain.ChunkingStrategy) []domain.TextChunk {
	if text == "" {
		return nil
	}

	var chunks []domain.TextChunk
	switch strategy {
	case domain.StrategySection:
		chunks = c.sectionChunks(text, jobID, sections.Identify(text))
	case domain.StrategyOverlapping:
		chunks = c.overlappingChunks(text, jobID)
	case domain.StrategyHybrid:
		found := sections.Identify(text)
		if len(found) > 1 {
			chunks = c.sectionChunks(text, jobID, found)
		} else {
			chunks = c.overlappingChunks(text, jobID)
		}
	default:
		logger.Warn("Unknown chunking strategy %q for job %s", strategy, jobID)
		return nil
	}

	kept := c.filter(chunks)
	logger.Debug("Created %d chunks (%d before filtering) for job %s using %s strategy",
		len(kept), len(chunks), jobID, strategy)
	return kept
}
