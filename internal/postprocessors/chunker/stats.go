package chunker

import "github.com/custodia-labs/sercha-jobs/internal/core/domain"

// Stats summarises chunks. An empty input gives zero stats.
func Stats(chunks []domain.TextChunk) domain.ProcessingStats {
	if len(chunks) == 0 {
		return domain.ProcessingStats{}
	}

	s := domain.ProcessingStats{
		TotalChunks: len(chunks),
		ChunkTypes:  make(map[domain.ChunkType]int),
		MinWords:    chunks[0].WordCount,
	}
	var quality float64
	for _, ch := range chunks {
		s.ChunkTypes[ch.ChunkType]++
		s.TotalWords += ch.WordCount
		quality += ch.ConfidenceScore
		s.MinWords = min(s.MinWords, ch.WordCount)
		s.MaxWords = max(s.MaxWords, ch.WordCount)
	}
	s.AvgWords = float64(s.TotalWords) / float64(len(chunks))
	s.AvgQuality = quality / float64(len(chunks))
	return s
}

// Stats summarises chunks produced by c.
func (c *Chunker) Stats(chunks []domain.TextChunk) domain.ProcessingStats {
	return Stats(chunks)
}

// DistinctWords counts the words covered by chunks, counting the words a
// segment or section part shares with its predecessor only once. The full
// chunk is skipped. For the section strategy the result never exceeds the
// word count of the cleaned text.
func DistinctWords(chunks []domain.TextChunk) int {
	total := 0
	var prev *domain.TextChunk
	for i := range chunks {
		ch := &chunks[i]
		if ch.ChunkType == domain.ChunkFull {
			prev = nil
			continue
		}
		n := ch.WordCount
		if prev != nil && prev.ChunkType == ch.ChunkType && windowed(ch.ChunkType) {
			if shared := prev.OverlapEnd - ch.OverlapStart; shared > 0 {
				n -= min(shared, n)
			}
		}
		total += n
		prev = ch
	}
	return total
}

func windowed(t domain.ChunkType) bool {
	return t == domain.ChunkSegment || t.IsPart()
}
