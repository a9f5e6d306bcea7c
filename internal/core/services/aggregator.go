package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Aggregate score weights: the best chunk dominates, the mean rewards
// jobs with several relevant chunks.
const (
	maxScoreWeight  = 0.7
	meanScoreWeight = 0.3
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// sectionPriority orders chunks when recombining a job's text.
var sectionPriority = map[domain.ChunkType]int{
	domain.ChunkTitle:            0,
	domain.ChunkSummary:          1,
	domain.ChunkResponsibilities: 2,
	domain.ChunkRequirements:     3,
	domain.ChunkBenefits:         4,
	domain.ChunkAbout:            5,
	domain.ChunkLocation:         6,
	domain.ChunkFull:             7,
	domain.ChunkSegment:          8,
}

func priorityOf(t domain.ChunkType) int {
	if p, ok := sectionPriority[t.Base()]; ok {
		return p
	}
	return len(sectionPriority)
}

// Aggregator merges chunk-level hits into job-level results.
type Aggregator struct{}

// NewAggregator creates an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate groups hits by parent job and scores each group.
// Results are ordered by aggregate score descending, then job ID ascending.
func (a *Aggregator) Aggregate(hits []domain.ChunkSearchHit) []domain.AggregatedJobResult {
	groups := make(map[string][]domain.ChunkSearchHit)
	var order []string
	for _, hit := range hits {
		jobID := hit.ParentJobID
		if jobID == "" {
			jobID = hit.Payload.ParentJobID
		}
		if jobID == "" {
			logger.Warn("aggregator: dropping hit %q without parent job", hit.ChunkID)
			continue
		}
		if _, ok := groups[jobID]; !ok {
			order = append(order, jobID)
		}
		groups[jobID] = append(groups[jobID], hit)
	}

	results := make([]domain.AggregatedJobResult, 0, len(order))
	for _, jobID := range order {
		results = append(results, aggregateGroup(jobID, groups[jobID]))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].AggregateScore != results[j].AggregateScore {
			return results[i].AggregateScore > results[j].AggregateScore
		}
		return results[i].JobID < results[j].JobID
	})

	logger.Debug("Aggregated %d hits into %d jobs", len(hits), len(results))
	return results
}

func aggregateGroup(jobID string, hits []domain.ChunkSearchHit) domain.AggregatedJobResult {
	scores := make([]float64, len(hits))
	best := 0
	var sum float64
	for i, hit := range hits {
		scores[i] = hit.SimilarityScore
		sum += hit.SimilarityScore
		if hit.SimilarityScore > hits[best].SimilarityScore {
			best = i
		}
	}
	maxScore := hits[best].SimilarityScore
	mean := sum / float64(len(hits))

	return domain.AggregatedJobResult{
		JobID:                  jobID,
		AggregateScore:         maxScore*maxScoreWeight + mean*meanScoreWeight,
		CombinedText:           combineText(hits),
		RepresentativeMetadata: hits[best].Payload.Snapshot,
		ChunkCount:             len(hits),
		ChunkScores:            scores,
		BestChunkType:          hits[best].Payload.ChunkType,
	}
}

// combineText rebuilds a readable document from a job's chunks.
func combineText(hits []domain.ChunkSearchHit) string {
	ordered := make([]domain.ChunkPayload, len(hits))
	for i, hit := range hits {
		ordered[i] = hit.Payload
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := priorityOf(ordered[i].ChunkType), priorityOf(ordered[j].ChunkType)
		if pi != pj {
			return pi < pj
		}
		return ordered[i].ChunkIndex < ordered[j].ChunkIndex
	})

	seen := make(map[string]struct{}, len(ordered))
	parts := make([]string, 0, len(ordered))
	for _, p := range ordered {
		if _, dup := seen[p.Text]; dup {
			continue
		}
		seen[p.Text] = struct{}{}

		text := p.Text
		if p.SectionHeader != "" && !strings.Contains(text, p.SectionHeader) {
			text = p.SectionHeader + "\n" + text
		}
		parts = append(parts, text)
	}

	return strings.TrimSpace(excessNewlines.ReplaceAllString(strings.Join(parts, "\n\n"), "\n\n"))
}
