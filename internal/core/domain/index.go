package domain

import "time"

// IndexRunStatus is the outcome of an indexing run.
type IndexRunStatus string

// Index run statuses.
const (
	RunRunning   IndexRunStatus = "running"
	RunCompleted IndexRunStatus = "completed"
	RunPartial   IndexRunStatus = "partial"
	RunFailed    IndexRunStatus = "failed"
)

// IndexRun records one invocation of the indexer.
type IndexRun struct {
	ID         string           `json:"id"`
	Strategy   ChunkingStrategy `json:"strategy"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
	Jobs       int              `json:"jobs"`
	Chunks     int              `json:"chunks"`
	Status     IndexRunStatus   `json:"status"`
	Error      string           `json:"error,omitempty"`
}

// IndexOptions tune a single indexing call.
type IndexOptions struct {
	// Strategy overrides the configured chunking strategy when set.
	Strategy ChunkingStrategy
}

// IndexReport summarises an indexing call.
type IndexReport struct {
	RunID string `json:"run_id"`

	// Indexed lists jobs whose chunks were all upserted.
	Indexed []string `json:"indexed"`

	// Skipped lists jobs that produced no chunks.
	Skipped []string `json:"skipped"`

	// Failed lists jobs with at least one chunk in a failed batch.
	Failed []string `json:"failed"`

	ChunksUpserted int             `json:"chunks_upserted"`
	ChunksDeleted  int             `json:"chunks_deleted"`
	Stats          ProcessingStats `json:"stats"`
	Duration       time.Duration   `json:"duration"`
}

// ProcessedJob is the output of the pure stages for one posting.
type ProcessedJob struct {
	Job      JobPosting
	Cleaned  CleanedDocument
	Chunks   []TextChunk
	Metadata ExtractedMetadata
}

// Snapshot returns the vector payload snapshot for the job.
func (p ProcessedJob) Snapshot() MetadataSnapshot {
	return NewMetadataSnapshot(p.Job, p.Metadata)
}

// JobStats summarises the indexed corpus.
type JobStats struct {
	Jobs    int       `json:"jobs"`
	Chunks  int       `json:"chunks"`
	LastRun *IndexRun `json:"last_run,omitempty"`
}
