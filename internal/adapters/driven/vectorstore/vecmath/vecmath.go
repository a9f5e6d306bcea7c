// Package vecmath holds the brute-force similarity helpers shared by the
// in-process vector stores.
package vecmath

import (
	"encoding/binary"
	"math"
	"slices"
	"sort"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Cosine returns the cosine similarity of a and b.
// Mismatched lengths and zero vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Matches reports whether a payload passes the filter. A nil filter matches.
func Matches(filter *driven.VectorFilter, p domain.ChunkPayload) bool {
	if filter == nil {
		return true
	}
	if filter.RemoteOnly && !p.Snapshot.Metadata.RemoteWork {
		return false
	}
	if len(filter.JobIDs) > 0 && !slices.Contains(filter.JobIDs, p.ParentJobID) {
		return false
	}
	return true
}

// TopK sorts hits by similarity, best first, and keeps k of them.
// Ties keep chunk ID order so results are deterministic.
func TopK(hits []domain.ChunkSearchHit, k int) []domain.ChunkSearchHit {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].SimilarityScore != hits[j].SimilarityScore {
			return hits[i].SimilarityScore > hits[j].SimilarityScore
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})
	if k >= 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Encode packs a vector as little-endian float32 bytes.
func Encode(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// Decode unpacks bytes written by Encode.
func Decode(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
