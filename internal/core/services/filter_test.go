package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

func job(id string, score float64, text string, meta domain.ExtractedMetadata) domain.AggregatedJobResult {
	return domain.AggregatedJobResult{
		JobID:          id,
		AggregateScore: score,
		CombinedText:   text,
		RepresentativeMetadata: domain.MetadataSnapshot{
			Title:    "Engineer " + id,
			Metadata: meta,
		},
	}
}

func ids(results []domain.FilteredResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.JobID
	}
	return out
}

func TestFilter_NoCriteria(t *testing.T) {
	in := []domain.AggregatedJobResult{
		job("a", 0.4, "x", domain.ExtractedMetadata{}),
		job("b", 0.6, "y", domain.ExtractedMetadata{}),
	}
	out := NewFilterEngine().Filter(in, domain.SearchFilterCriteria{})

	assert.Equal(t, []string{"b", "a"}, ids(out))
	assert.InDelta(t, 0.6, out[0].BoostedScore, 1e-9)
}

func TestFilter_Rules(t *testing.T) {
	senior := domain.ExtractedMetadata{
		Skills:     []string{"python", "go"},
		Experience: domain.ExperienceInfo{Years: domain.IntPtr(5), Level: domain.LevelSenior},
		Salary:     domain.SalaryInfo{Min: domain.IntPtr(120000), Max: domain.IntPtr(150000)},
		RemoteWork: true,
		Locations:  []string{"berlin"},
		Education:  []string{"bachelor"},
		Benefits:   []string{"equity"},
	}
	text := "Build APIs in Python and Go. Kubernetes a plus."

	tests := []struct {
		name     string
		criteria domain.SearchFilterCriteria
		meta     domain.ExtractedMetadata
		keep     bool
		boost    float64
	}{
		{"exclude keyword", domain.SearchFilterCriteria{ExcludeKeywords: []string{"KUBERNETES"}}, senior, false, 0},
		{"exclude wins over matches", domain.SearchFilterCriteria{ExcludeKeywords: []string{"apis"}, RequiredSkills: []string{"python"}}, senior, false, 0},
		{"level match", domain.SearchFilterCriteria{ExperienceLevel: domain.LevelSenior}, senior, true, 0.20},
		{"level mismatch", domain.SearchFilterCriteria{ExperienceLevel: domain.LevelEntry}, senior, false, 0},
		{"level unknown kept", domain.SearchFilterCriteria{ExperienceLevel: domain.LevelEntry}, domain.ExtractedMetadata{}, true, 0},
		{"years in range", domain.SearchFilterCriteria{MinExperienceYears: domain.IntPtr(3), MaxExperienceYears: domain.IntPtr(6)}, senior, true, 0.15},
		{"years unknown kept", domain.SearchFilterCriteria{MinExperienceYears: domain.IntPtr(3)}, domain.ExtractedMetadata{}, true, 0},
		{"years below", domain.SearchFilterCriteria{MinExperienceYears: domain.IntPtr(6)}, senior, false, 0},
		{"years above", domain.SearchFilterCriteria{MaxExperienceYears: domain.IntPtr(4)}, senior, false, 0},
		{"salary overlap", domain.SearchFilterCriteria{MinSalary: domain.IntPtr(140000)}, senior, true, 0.10},
		{"salary no overlap", domain.SearchFilterCriteria{MinSalary: domain.IntPtr(160000)}, senior, false, 0},
		{"salary ceiling", domain.SearchFilterCriteria{MaxSalary: domain.IntPtr(100000)}, senior, false, 0},
		{"salary unknown kept", domain.SearchFilterCriteria{MinSalary: domain.IntPtr(50000)}, domain.ExtractedMetadata{}, true, 0},
		{"salary amount", domain.SearchFilterCriteria{MaxSalary: domain.IntPtr(100000)}, domain.ExtractedMetadata{Salary: domain.SalaryInfo{Amount: domain.IntPtr(90000)}}, true, 0.10},
		{"remote", domain.SearchFilterCriteria{RemoteOnly: true}, senior, true, 0.20},
		{"not remote", domain.SearchFilterCriteria{RemoteOnly: true}, domain.ExtractedMetadata{}, false, 0},
		{"has salary", domain.SearchFilterCriteria{HasSalaryInfo: true}, senior, true, 0.05},
		{"no salary", domain.SearchFilterCriteria{HasSalaryInfo: true}, domain.ExtractedMetadata{}, false, 0},
		{"location extracted", domain.SearchFilterCriteria{Locations: []string{"London", "Berlin"}}, senior, true, 0.15},
		{"location missing", domain.SearchFilterCriteria{Locations: []string{"London"}}, senior, false, 0},
		{"required skills", domain.SearchFilterCriteria{RequiredSkills: []string{"Python", "kubernetes"}}, senior, true, 0.25},
		{"required skill missing", domain.SearchFilterCriteria{RequiredSkills: []string{"python", "rust"}}, senior, false, 0},
		{"required skill not substring", domain.SearchFilterCriteria{RequiredSkills: []string{"pi"}}, senior, false, 0},
		{"preferred skills", domain.SearchFilterCriteria{PreferredSkills: []string{"go", "rust", "Go"}}, senior, true, 0.10},
		{"preferred capped", domain.SearchFilterCriteria{PreferredSkills: []string{"python", "go", "kubernetes", "apis"}}, senior, true, 0.30},
		{"preferred never drops", domain.SearchFilterCriteria{PreferredSkills: []string{"rust"}}, senior, true, 0},
		{"education", domain.SearchFilterCriteria{RequiredEducation: []string{"bachelor"}}, senior, true, 0.10},
		{"education missing", domain.SearchFilterCriteria{RequiredEducation: []string{"phd"}}, senior, false, 0},
		{"benefits and education", domain.SearchFilterCriteria{RequiredEducation: []string{"bachelor"}, RequiredBenefits: []string{"equity"}}, senior, true, 0.20},
		{"benefit missing", domain.SearchFilterCriteria{RequiredBenefits: []string{"gym"}}, senior, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewFilterEngine().Filter([]domain.AggregatedJobResult{job("j", 0.5, text, tt.meta)}, tt.criteria)
			if !tt.keep {
				assert.Empty(t, out)
				return
			}
			require.Len(t, out, 1)
			assert.InDelta(t, 0.5+tt.boost, out[0].BoostedScore, 1e-9)
		})
	}
}

func TestFilter_BoostClampedAndResorted(t *testing.T) {
	meta := domain.ExtractedMetadata{RemoteWork: true, Skills: []string{"go"}}
	in := []domain.AggregatedJobResult{
		job("plain", 0.9, "office job", domain.ExtractedMetadata{}),
		job("match", 0.85, "go", meta),
	}
	criteria := domain.SearchFilterCriteria{PreferredSkills: []string{"go"}}

	out := NewFilterEngine().Filter(in, criteria)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"match", "plain"}, ids(out))
	assert.InDelta(t, 0.95, out[0].BoostedScore, 1e-9)

	strong := criteria
	strong.RequiredSkills = []string{"go"}
	strong.RemoteOnly = true
	out = NewFilterEngine().Filter(in[1:], strong)
	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].BoostedScore)
}

func TestFilter_RequiredSkillsNeverLeak(t *testing.T) {
	skills := [][]string{{"python"}, {"go", "python"}, {"rust"}, nil, {"python", "sql", "go"}}
	var in []domain.AggregatedJobResult
	for i, s := range skills {
		in = append(in, job(fmt.Sprintf("j%d", i), 0.5, "generic text", domain.ExtractedMetadata{Skills: s}))
	}

	for _, required := range [][]string{{"python"}, {"go", "python"}, {"sql"}, {"haskell"}} {
		out := NewFilterEngine().Filter(in, domain.SearchFilterCriteria{RequiredSkills: required})
		for _, r := range out {
			for _, want := range required {
				assert.Contains(t, r.RepresentativeMetadata.Metadata.Skills, want)
			}
		}
	}
}

func TestFilter_CandidateCap(t *testing.T) {
	var in []domain.AggregatedJobResult
	for i := 0; i < 80; i++ {
		in = append(in, job(fmt.Sprintf("j%02d", i), float64(i)/100, "x", domain.ExtractedMetadata{}))
	}

	assert.Len(t, NewFilterEngine().Filter(in, domain.SearchFilterCriteria{}), DefaultCandidateCap)

	out := NewFilterEngine(WithCandidateCap(5)).Filter(in, domain.SearchFilterCriteria{})
	assert.Equal(t, []string{"j79", "j78", "j77", "j76", "j75"}, ids(out))
}

func TestContainsTerm(t *testing.T) {
	assert.True(t, containsTerm("we use go daily", "go"))
	assert.False(t, containsTerm("a good fit", "go"))
	assert.True(t, containsTerm("c++, java", "c++"))
	assert.False(t, containsTerm("c++ only", "c"))
	assert.True(t, containsTerm("new york, ny", "new york"))
	assert.False(t, containsTerm("", "go"))
}
