package domain

import "context"

// ChunkPair is one positionally aligned (candidate, reference) window pair.
// Either side may be the empty string when the texts produce different
// chunk counts, but both sides are always present.
type ChunkPair struct {
	Candidate string
	Reference string
}

// ScoreVector holds the per-pair similarity scores produced by a Scorer.
// The three slices are parallel: index i scores pair i.
type ScoreVector struct {
	Precision []float64
	Recall    []float64
	F1        []float64
}

// Len returns the number of scored pairs.
func (v ScoreVector) Len() int { return len(v.F1) }

// Stats summarizes one score dimension across all pairs.
type Stats struct {
	Mean     float64 `json:"mean"`
	Weighted float64 `json:"weighted"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// ChunkDetail is the human-facing record for one scored pair.
type ChunkDetail struct {
	Position         int     `json:"chunk"`
	Precision        float64 `json:"precision"`
	Recall           float64 `json:"recall"`
	F1               float64 `json:"f1"`
	CandidateWords   int     `json:"candidate_words"`
	ReferenceWords   int     `json:"reference_words"`
	CandidateExcerpt string  `json:"candidate_excerpt"`
	ReferenceExcerpt string  `json:"reference_excerpt"`
}

// Summary is the terminal aggregate of one comparison run.
type Summary struct {
	Chunks    int           `json:"chunks"`
	Precision Stats         `json:"precision"`
	Recall    Stats         `json:"recall"`
	F1        Stats         `json:"f1"`
	PerChunk  []ChunkDetail `json:"per_chunk"`
}

// Chunker splits a text into an ordered sequence of word windows.
type Chunker interface {
	Chunk(text string) []string
}

// Scorer evaluates all pairs in one atomic batch. The returned vector
// preserves pair order: result index i corresponds to pairs[i]. A failed
// call yields no partial scores.
type Scorer interface {
	Name() string
	Score(ctx context.Context, pairs []ChunkPair) (ScoreVector, error)
}
