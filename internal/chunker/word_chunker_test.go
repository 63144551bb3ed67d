package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semscore/internal/domain"
)

func TestNewWordChunker(t *testing.T) {
	t.Run("Should reject non-positive window size", func(t *testing.T) {
		_, err := NewWordChunker(0, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Contains(t, err.Error(), "chunk-size")
	})
	t.Run("Should reject negative overlap", func(t *testing.T) {
		_, err := NewWordChunker(3, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Contains(t, err.Error(), "chunk-overlap")
	})
}

func TestWordChunker_Chunk(t *testing.T) {
	t.Run("Should emit one empty chunk for empty text", func(t *testing.T) {
		c, err := NewWordChunker(350, 40)
		require.NoError(t, err)
		assert.Equal(t, []string{""}, c.Chunk(""))
		assert.Equal(t, []string{""}, c.Chunk("   \n\t "))
	})
	t.Run("Should emit one chunk when text is shorter than the window", func(t *testing.T) {
		c, err := NewWordChunker(10, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"just a few words"}, c.Chunk("just a few words"))
	})
	t.Run("Should overlap consecutive windows", func(t *testing.T) {
		c, err := NewWordChunker(3, 1)
		require.NoError(t, err)
		got := c.Chunk("the cat sat on the mat")
		assert.Equal(t, []string{"the cat sat", "sat on the", "the mat"}, got)
	})
	t.Run("Should terminate when overlap exceeds window size", func(t *testing.T) {
		c, err := NewWordChunker(2, 99)
		require.NoError(t, err)
		got := c.Chunk("a b c")
		assert.Equal(t, []string{"a b", "b c", "c"}, got)
	})
	t.Run("Should ignore overlap for single-word windows", func(t *testing.T) {
		c, err := NewWordChunker(1, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, c.Chunk("a b c"))
	})
	t.Run("Should cover every word in order", func(t *testing.T) {
		words := strings.Fields("one two three four five six seven eight nine ten")
		c, err := NewWordChunker(4, 2)
		require.NoError(t, err)
		chunks := c.Chunk(strings.Join(words, " "))

		// Rebuild the word sequence from chunk starts: each chunk after the
		// first repeats the previous window's overlap.
		var rebuilt []string
		step := 4 - 2
		for i, ch := range chunks {
			cw := strings.Fields(ch)
			if i == 0 {
				rebuilt = append(rebuilt, cw...)
				continue
			}
			start := i * step
			for j, w := range cw {
				if start+j >= len(rebuilt) {
					rebuilt = append(rebuilt, w)
				}
			}
		}
		assert.Equal(t, words, rebuilt)
	})
}
