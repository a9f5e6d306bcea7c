package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

type stubExtractor struct{ name string }

func (s *stubExtractor) Extract(_ context.Context, _ string) domain.ExtractedMetadata {
	return domain.ExtractedMetadata{Skills: []string{s.name}}
}

func (s *stubExtractor) Name() string { return s.name }

type stubLLM struct{}

func (stubLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return "{}", nil
}
func (stubLLM) ModelName() string            { return "stub" }
func (stubLLM) Ping(_ context.Context) error { return nil }
func (stubLLM) Close() error                 { return nil }

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Has("custom"))

	r.Register("custom", func(_ Dependencies) (driven.MetadataExtractor, error) {
		return &stubExtractor{name: "custom"}, nil
	})

	require.True(t, r.Has("custom"))
	ext, err := r.Build("custom", Dependencies{})
	require.NoError(t, err)
	assert.Equal(t, "custom", ext.Name())
}

func TestRegistry_BuildUnknown(t *testing.T) {
	_, err := NewRegistry().Build("grammar", Dependencies{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, []string{"llm", "vocabulary"}, r.Names())

	vocab, err := r.Build(domain.ExtractorVocabulary, Dependencies{})
	require.NoError(t, err)
	assert.Equal(t, "vocabulary", vocab.Name())

	_, err = r.Build(domain.ExtractorLLM, Dependencies{})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	withModel, err := r.Build(domain.ExtractorLLM, Dependencies{LLM: stubLLM{}})
	require.NoError(t, err)
	assert.Equal(t, "llm", withModel.Name())
}
