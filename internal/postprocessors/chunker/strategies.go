package chunker

import (
	"strings"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// FullChunkConfidence is the fixed quality of the whole-document fallback chunk.
const FullChunkConfidence = 0.8

// sectionStride spaces section chunk indexes so that the parts of an
// oversized section sort between their section and the next one.
const sectionStride = 100

// window is a span of words [start, end).
type window struct {
	start, end int
}

// windows slides a window of size words across n words, advancing by
// size-overlap. The last window ends at n and may be shorter.
func windows(n, size, overlap int) []window {
	if n == 0 {
		return nil
	}
	step := size - overlap
	if step <= 0 {
		step = size
	}
	var out []window
	for start := 0; ; start += step {
		end := min(start+size, n)
		out = append(out, window{start, end})
		if end == n {
			return out
		}
	}
}

// sectionChunks emits one chunk per section within size bounds, parts for
// oversized sections and a full-document chunk last. Parts carry their word
// span within the section in OverlapStart and OverlapEnd.
func (c *Chunker) sectionChunks(text, jobID string, found []domain.Section) []domain.TextChunk {
	stride := c.stride(found)
	var chunks []domain.TextChunk

	for i, sec := range found {
		words := strings.Fields(sec.Content)
		n := len(words)
		if n == 0 || n < c.minChunkSize {
			// Small sections are dropped, not merged forward.
			continue
		}

		base := i * stride
		if n <= c.maxChunkSize {
			chunks = append(chunks, domain.TextChunk{
				ParentJobID:     jobID,
				ChunkIndex:      base,
				ChunkType:       domain.ChunkTypeForSection(sec.Type),
				Text:            sec.Content,
				WordCount:       n,
				ConfidenceScore: Quality(sec.Content),
				SectionHeader:   sec.Type.Header(),
			})
			continue
		}

		for sub, w := range windows(n, c.maxChunkSize, c.overlapSize) {
			part := strings.Join(words[w.start:w.end], " ")
			chunks = append(chunks, domain.TextChunk{
				ParentJobID:     jobID,
				ChunkIndex:      base + sub,
				ChunkType:       domain.PartChunkType(sec.Type),
				Text:            part,
				WordCount:       w.end - w.start,
				ConfidenceScore: Quality(part),
				SectionHeader:   sec.Type.Header(),
				OverlapStart:    w.start,
				OverlapEnd:      w.end,
			})
		}
	}

	chunks = append(chunks, domain.TextChunk{
		ParentJobID:     jobID,
		ChunkIndex:      len(found) * stride,
		ChunkType:       domain.ChunkFull,
		Text:            text,
		WordCount:       len(strings.Fields(text)),
		ConfidenceScore: FullChunkConfidence,
	})
	return chunks
}

// stride returns the index spacing between sections. It grows past
// sectionStride only when a section would need that many parts.
func (c *Chunker) stride(found []domain.Section) int {
	stride := sectionStride
	for _, sec := range found {
		n := len(strings.Fields(sec.Content))
		if n <= c.maxChunkSize {
			continue
		}
		for len(windows(n, c.maxChunkSize, c.overlapSize)) >= stride {
			stride *= 10
		}
	}
	return stride
}

// overlappingChunks slides a window over the whole text. OverlapStart and
// OverlapEnd hold the chunk's word span in the document, so neighbours
// share prev.OverlapEnd - next.OverlapStart words.
func (c *Chunker) overlappingChunks(text, jobID string) []domain.TextChunk {
	words := strings.Fields(text)
	ws := windows(len(words), c.maxChunkSize, c.overlapSize)
	chunks := make([]domain.TextChunk, 0, len(ws))

	for i, w := range ws {
		seg := strings.Join(words[w.start:w.end], " ")
		chunks = append(chunks, domain.TextChunk{
			ParentJobID:     jobID,
			ChunkIndex:      i,
			ChunkType:       domain.ChunkSegment,
			Text:            seg,
			WordCount:       w.end - w.start,
			ConfidenceScore: Quality(seg),
			OverlapStart:    w.start,
			OverlapEnd:      w.end,
		})
	}
	return chunks
}
