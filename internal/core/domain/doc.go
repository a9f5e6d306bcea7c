// Package domain defines the core entities of the job search pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - JobPosting: A scraped posting, read-only input to the pipeline
//   - Section: A typed region of a posting found by header matching
//   - TextChunk: An independently embeddable unit of a posting
//   - ExtractedMetadata: Structured attributes derived from a posting
//   - AggregatedJobResult / FilteredResult / RankedResult: query-time results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
