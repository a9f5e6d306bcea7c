// Package sqlite provides a unified SQLite-based implementation of the job
// store and the vector store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Both stores share one database:
//
//   - JobStore: postings, their current chunk sets and index runs
//   - VectorStore: chunk embeddings with payloads, scored by brute-force cosine
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sercha-jobs/data/jobs.db.
// The directory ":memory:" keeps everything in process memory.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
