// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: Turns chunk and query text into vectors
//   - VectorStore: Chunk vector persistence and similarity search
//   - MetadataExtractor: Structured attributes from cleaned text
//   - JobStore: Posting, chunk and index run persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Reranker: Cross-encoder scoring. Without it, filter order is final.
//   - LLMService: Language model. Only used by the LLM metadata extractor.
//   - ResultCache: Search result cache. Without it, every search runs in full.
//   - JobSource: Posting loader for the CLI and watch mode.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
