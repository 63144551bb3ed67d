// Package align pairs candidate chunks with reference chunks by position.
package align

import "semscore/internal/domain"

// Pairs zips the two chunk sequences positionally, padding the shorter
// side with empty strings. Padding deliberately penalizes length
// mismatches: unmatched tail chunks score against nothing instead of
// being dropped.
func Pairs(candidateChunks, referenceChunks []string) []domain.ChunkPair {
	n := max(len(candidateChunks), len(referenceChunks))
	pairs := make([]domain.ChunkPair, n)
	for i := 0; i < n; i++ {
		var p domain.ChunkPair
		if i < len(candidateChunks) {
			p.Candidate = candidateChunks[i]
		}
		if i < len(referenceChunks) {
			p.Reference = referenceChunks[i]
		}
		pairs[i] = p
	}
	return pairs
}

// Truncate keeps at most maxPairs leading pairs. Zero or negative
// maxPairs means no limit. Truncation happens after padding, so a capped
// run can drop real tail content from the longer side.
func Truncate(pairs []domain.ChunkPair, maxPairs int) []domain.ChunkPair {
	if maxPairs <= 0 || maxPairs >= len(pairs) {
		return pairs
	}
	return pairs[:maxPairs]
}
