// Package aggregate reduces per-pair scores into a comparison Summary.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"semscore/internal/domain"
)

// excerptLen bounds the per-side excerpt stored in each ChunkDetail.
const excerptLen = 160

// Summarize reduces the score vector over its pair batch into a Summary.
// The three score slices must each be exactly as long as pairs; a mismatch
// means the scorer broke its contract.
func Summarize(scores domain.ScoreVector, pairs []domain.ChunkPair) (domain.Summary, error) {
	n := len(pairs)
	if len(scores.Precision) != n || len(scores.Recall) != n || len(scores.F1) != n {
		return domain.Summary{}, fmt.Errorf(
			"%w: got %d/%d/%d scores for %d pairs",
			domain.ErrInvariantViolation,
			len(scores.Precision), len(scores.Recall), len(scores.F1), n,
		)
	}
	if n == 0 {
		return domain.Summary{}, fmt.Errorf("%w: empty pair batch", domain.ErrInvariantViolation)
	}

	weights := make([]float64, n)
	details := make([]domain.ChunkDetail, n)
	for i, p := range pairs {
		cw := wordCount(p.Candidate)
		rw := wordCount(p.Reference)
		weights[i] = float64(max(cw, rw, 1))
		details[i] = domain.ChunkDetail{
			Position:         i + 1,
			Precision:        scores.Precision[i],
			Recall:           scores.Recall[i],
			F1:               scores.F1[i],
			CandidateWords:   cw,
			ReferenceWords:   rw,
			CandidateExcerpt: excerpt(p.Candidate),
			ReferenceExcerpt: excerpt(p.Reference),
		}
	}

	return domain.Summary{
		Chunks:    n,
		Precision: stats(scores.Precision, weights),
		Recall:    stats(scores.Recall, weights),
		F1:        stats(scores.F1, weights),
		PerChunk:  details,
	}, nil
}

// WorstChunks returns the n lowest-F1 details, ties kept in original
// position order so output is deterministic.
func WorstChunks(summary domain.Summary, n int) []domain.ChunkDetail {
	if n <= 0 {
		return nil
	}
	worst := make([]domain.ChunkDetail, len(summary.PerChunk))
	copy(worst, summary.PerChunk)
	sort.SliceStable(worst, func(i, j int) bool { return worst[i].F1 < worst[j].F1 })
	if n > len(worst) {
		n = len(worst)
	}
	return worst[:n]
}

func stats(values, weights []float64) domain.Stats {
	sum := 0.0
	weightedSum := 0.0
	totalWeight := 0.0
	lo, hi := values[0], values[0]
	for i, v := range values {
		sum += v
		weightedSum += v * weights[i]
		totalWeight += weights[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return domain.Stats{
		Mean:     sum / float64(len(values)),
		Weighted: weightedSum / totalWeight,
		Min:      lo,
		Max:      hi,
	}
}

func wordCount(s string) int { return len(strings.Fields(s)) }

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLen {
		return s
	}
	return string(runes[:excerptLen])
}
