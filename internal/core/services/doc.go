// Package services implements the driving port interfaces.
// IndexService turns postings into chunk vectors; SearchService turns a
// query back into ranked jobs through aggregation, filtering and
// reranking. Services depend only on ports and are safe for concurrent use.
package services
