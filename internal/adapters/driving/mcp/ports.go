package mcp

import (
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Search answers search_jobs.
	Search driving.SearchService

	// Index backs extract_metadata, index_stats and the job resources.
	// Optional: without it only search_jobs is registered.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
