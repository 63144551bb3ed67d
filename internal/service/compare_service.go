// Package service wires the comparison pipeline: normalize, chunk, align,
// score, aggregate. One Compare call is one atomic run; any stage failure
// aborts it with no partial Summary.
package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"semscore/internal/aggregate"
	"semscore/internal/align"
	"semscore/internal/domain"
	"semscore/internal/textnorm"
)

// Options holds the run-level switches that are not owned by a single
// pipeline stage.
type Options struct {
	Lower              bool
	CollapseWhitespace bool
	NoChunk            bool
	MaxChunks          int
}

// CompareService runs the full comparison pipeline over two texts.
type CompareService struct {
	chunker domain.Chunker
	scorer  domain.Scorer
	opts    Options
	log     *log.Logger
}

// NewCompareService validates the options and assembles the pipeline. The
// chunker may be nil only in NoChunk mode.
func NewCompareService(chunker domain.Chunker, scorer domain.Scorer, opts Options, logger *log.Logger) (*CompareService, error) {
	if opts.MaxChunks < 0 {
		return nil, fmt.Errorf("%w: max-chunks must be >= 0, got %d", domain.ErrConfiguration, opts.MaxChunks)
	}
	if scorer == nil {
		return nil, fmt.Errorf("%w: a scorer is required", domain.ErrConfiguration)
	}
	if chunker == nil && !opts.NoChunk {
		return nil, fmt.Errorf("%w: a chunker is required unless chunking is disabled", domain.ErrConfiguration)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CompareService{chunker: chunker, scorer: scorer, opts: opts, log: logger}, nil
}

// Compare normalizes and chunks both texts, aligns the chunk sequences,
// scores all pairs in one batch, and reduces the scores to a Summary.
func (s *CompareService) Compare(ctx context.Context, candidate, reference string) (domain.Summary, error) {
	candidate = textnorm.Normalize(candidate, s.opts.Lower, s.opts.CollapseWhitespace)
	reference = textnorm.Normalize(reference, s.opts.Lower, s.opts.CollapseWhitespace)

	var candChunks, refChunks []string
	if s.opts.NoChunk {
		candChunks = []string{candidate}
		refChunks = []string{reference}
	} else {
		candChunks = s.chunker.Chunk(candidate)
		refChunks = s.chunker.Chunk(reference)
	}
	s.log.Debug("chunked texts", "candidate_chunks", len(candChunks), "reference_chunks", len(refChunks))

	pairs := align.Truncate(align.Pairs(candChunks, refChunks), s.opts.MaxChunks)
	s.log.Info("scoring chunk pairs", "pairs", len(pairs), "scorer", s.scorer.Name())

	scores, err := s.scorer.Score(ctx, pairs)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("scoring %d pairs: %w", len(pairs), err)
	}

	summary, err := aggregate.Summarize(scores, pairs)
	if err != nil {
		return domain.Summary{}, err
	}
	s.log.Info("comparison complete", "chunks", summary.Chunks, "f1_weighted", summary.F1.Weighted)
	return summary, nil
}
