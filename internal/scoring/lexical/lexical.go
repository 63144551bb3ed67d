// Package lexical implements an offline scorer based on weighted token
// overlap. It needs no network or model and is fully deterministic, which
// also makes it the reference backend for tests.
package lexical

import (
	"context"

	"semscore/internal/domain"
	"semscore/internal/scoring"
)

// Scorer computes precision as the weighted share of candidate tokens
// found in the reference (recall symmetrically) and F1 as their harmonic
// mean. With IDF enabled, rare tokens count more than common ones; the
// weights come from the reference chunks of the same batch.
type Scorer struct {
	useIDF bool
}

// Options configures the lexical scorer.
type Options struct {
	UseIDF bool
}

func NewScorer(opts Options) *Scorer {
	return &Scorer{useIDF: opts.UseIDF}
}

func (s *Scorer) Name() string { return "lexical" }

// Score evaluates all pairs in one pass. It never fails: the batch is
// local and every input is a valid string.
func (s *Scorer) Score(_ context.Context, pairs []domain.ChunkPair) (domain.ScoreVector, error) {
	candTokens := make([][]string, len(pairs))
	refTokens := make([][]string, len(pairs))
	for i, p := range pairs {
		candTokens[i] = scoring.Tokenize(p.Candidate)
		refTokens[i] = scoring.Tokenize(p.Reference)
	}

	weight := scoring.Uniform
	if s.useIDF {
		idf := scoring.NewIDF(refTokens)
		weight = idf.Weight
	}

	out := domain.ScoreVector{
		Precision: make([]float64, len(pairs)),
		Recall:    make([]float64, len(pairs)),
		F1:        make([]float64, len(pairs)),
	}
	for i := range pairs {
		p := overlap(candTokens[i], refTokens[i], weight)
		r := overlap(refTokens[i], candTokens[i], weight)
		out.Precision[i] = p
		out.Recall[i] = r
		out.F1[i] = harmonic(p, r)
	}
	return out, nil
}

// overlap is the weighted fraction of from-tokens that appear in
// to-tokens. Two tokenless sides are a perfect match; one tokenless side
// is a total miss, which keeps alignment padding penalized.
func overlap(from, to []string, weight func(string) float64) float64 {
	if len(from) == 0 {
		if len(to) == 0 {
			return 1.0
		}
		return 0.0
	}
	toSet := make(map[string]struct{}, len(to))
	for _, tok := range to {
		toSet[tok] = struct{}{}
	}
	matched := 0.0
	total := 0.0
	for _, tok := range from {
		w := weight(tok)
		total += w
		if _, ok := toSet[tok]; ok {
			matched += w
		}
	}
	if total == 0 {
		return 0.0
	}
	return matched / total
}

func harmonic(p, r float64) float64 {
	if p+r == 0 {
		return 0.0
	}
	return 2 * p * r / (p + r)
}
