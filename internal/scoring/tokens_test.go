package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("Should lowercase and keep apostrophes inside words", func(t *testing.T) {
		assert.Equal(t, []string{"don't", "shout"}, Tokenize("Don't SHOUT"))
	})
	t.Run("Should return nothing for text without letters", func(t *testing.T) {
		assert.Empty(t, Tokenize("123 !!! ..."))
	})
}

func TestIDF(t *testing.T) {
	docs := [][]string{
		{"the", "river"},
		{"the", "boat", "boat"},
		{"the"},
	}
	idf := NewIDF(docs)

	t.Run("Should weight rare tokens above ubiquitous ones", func(t *testing.T) {
		assert.Greater(t, idf.Weight("river"), idf.Weight("the"))
	})
	t.Run("Should count each document once regardless of repeats", func(t *testing.T) {
		assert.Equal(t, idf.Weight("river"), idf.Weight("boat"))
	})
	t.Run("Should give unseen tokens the heaviest weight", func(t *testing.T) {
		assert.Greater(t, idf.Weight("hippopotamus"), idf.Weight("river"))
	})
}
