package chunker

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
	"github.com/custodia-labs/sercha-jobs/internal/normalisers/jobtext"
)

// Filtering thresholds.
const (
	minConfidence       = 0.3
	maxBoilerplateRatio = 0.7
	shortChunkWords     = 20
)

// Words whose presence marks a chunk as carrying job signal.
var technicalKeywords = []string{"experience", "required", "skills", "responsibilities", "qualifications"}

var (
	veryShortText = regexp.MustCompile(`^\s*.{0,20}\s*$`)
	emptyBullet   = regexp.MustCompile(`(?m)^\s*[-•*]\s*$`)
	emptyNumbered = regexp.MustCompile(`(?m)^\s*\d+\.\s*$`)
	separatorLine = regexp.MustCompile(`(?m)^\s*[:\-=]{3,}\s*$`)
	listMarkup    = regexp.MustCompile(`(?m)^\s*(?:[-•*]|\d+[.)])\s+\S`)
)

// Quality scores a chunk's text in [0, 1].
//
// Starting from 1.0: halved under 20 words, times 0.7 for low-information
// content, +0.1 per distinct technical keyword, +0.1 for list markup.
func Quality(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	score := 1.0
	if len(strings.Fields(text)) < shortChunkWords {
		score *= 0.5
	}

	if lowInformation(text) {
		score *= 0.7
	}

	lower := strings.ToLower(text)
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			score += 0.1
		}
	}

	if listMarkup.MatchString(text) {
		score += 0.1
	}

	return clamp01(score)
}

func lowInformation(text string) bool {
	return veryShortText.MatchString(text) ||
		emptyBullet.MatchString(text) ||
		emptyNumbered.MatchString(text) ||
		separatorLine.MatchString(text)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// filter drops chunks that are too short (except the full fallback),
// too low in quality or mostly boilerplate.
func (c *Chunker) filter(chunks []domain.TextChunk) []domain.TextChunk {
	kept := make([]domain.TextChunk, 0, len(chunks))
	for _, ch := range chunks {
		switch {
		case ch.ChunkType != domain.ChunkFull && ch.WordCount < c.minChunkSize:
			continue
		case ch.ConfidenceScore < minConfidence:
			continue
		case jobtext.BoilerplateRatio(ch.Text) > maxBoilerplateRatio:
			continue
		}
		kept = append(kept, ch)
	}
	if dropped := len(chunks) - len(kept); dropped > 0 {
		logger.Debug("Filtered %d -> %d chunks", len(chunks), len(kept))
	}
	return kept
}
