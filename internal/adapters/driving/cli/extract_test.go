package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

func TestExtractCmd_Use(t *testing.T) {
	assert.Equal(t, "extract [file]", extractCmd.Use)
}

func TestExtractCmd_PostingFile(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	resetFlags(t, extractCmd)
	ts.index.metadata = domain.ExtractedMetadata{Skills: []string{"go"}}

	out, err := execute(t, "extract", filepath.Join(writePostings(t), "jobs.json"))
	require.NoError(t, err)

	var got []extraction
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "j1", got[0].JobID)
	assert.Equal(t, []string{"go"}, got[0].Metadata.Skills)
	assert.Equal(t, 1, got[0].Stats.TotalChunks)
	assert.Empty(t, got[0].Chunks)
}

func TestExtractCmd_PlainTextWithChunks(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	resetFlags(t, extractCmd)

	path := filepath.Join(t.TempDir(), "posting-42.txt")
	require.NoError(t, os.WriteFile(path, []byte("Senior Go engineer"), 0600))

	out, err := execute(t, "extract", "--chunks", path)
	require.NoError(t, err)

	require.Len(t, ts.index.processed, 1)
	assert.Equal(t, "posting-42", ts.index.processed[0].ID)
	assert.Equal(t, "Senior Go engineer", ts.index.processed[0].RawText)
	assert.Contains(t, out, `"chunks"`)
}

func TestExtractCmd_MissingFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	resetFlags(t, extractCmd)

	_, err := execute(t, "extract", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
