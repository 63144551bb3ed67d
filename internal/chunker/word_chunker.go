package chunker

import (
	"fmt"
	"strings"

	"semscore/internal/domain"
)

// WordChunker splits text into overlapping windows of whitespace-separated
// words. Overlap is clamped to windowSize-1 so the step stays positive.
type WordChunker struct {
	windowSize int
	overlap    int
}

// NewWordChunker validates the window parameters and returns a chunker.
func NewWordChunker(windowSize, overlap int) (*WordChunker, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: chunk-size must be > 0, got %d", domain.ErrConfiguration, windowSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk-overlap must be >= 0, got %d", domain.ErrConfiguration, overlap)
	}
	return &WordChunker{windowSize: windowSize, overlap: overlap}, nil
}

// Chunk returns the ordered word windows of text. A text with no words
// yields a single empty chunk so alignment always has at least one entry
// per side.
func (c *WordChunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	effectiveOverlap := 0
	if c.windowSize > 1 {
		effectiveOverlap = min(c.overlap, c.windowSize-1)
	}
	step := max(c.windowSize-effectiveOverlap, 1)

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := min(start+c.windowSize, len(words))
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
