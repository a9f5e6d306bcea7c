// Package mcp provides an MCP (Model Context Protocol) server adapter for sercha-jobs.
// It lets AI assistants search indexed postings and extract posting metadata.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
