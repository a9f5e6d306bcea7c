package driven

import "github.com/custodia-labs/sercha-jobs/internal/core/domain"

// JobNormaliser turns a raw posting into cleaned text.
// Implementations never fail; unusable input yields empty text.
type JobNormaliser interface {
	Normalise(job domain.JobPosting) domain.CleanedDocument
}

// Chunker splits cleaned text into embeddable chunks.
type Chunker interface {
	// Chunk returns the filtered chunks of one posting.
	Chunk(text, jobID string, strategy domain.ChunkingStrategy) []domain.TextChunk

	// Stats summarises a chunk set.
	Stats(chunks []domain.TextChunk) domain.ProcessingStats

	// Settings returns the effective chunking settings.
	Settings() domain.ChunkingSettings
}
