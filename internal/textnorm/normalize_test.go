package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("Should collapse whitespace runs to single spaces", func(t *testing.T) {
		got := Normalize("  foo\t bar\n\nbaz  ", false, true)
		assert.Equal(t, "foo bar baz", got)
	})
	t.Run("Should lowercase after collapsing", func(t *testing.T) {
		got := Normalize("Foo\tBAR", true, true)
		assert.Equal(t, "foo bar", got)
	})
	t.Run("Should leave text untouched when both flags are off", func(t *testing.T) {
		got := Normalize("  Foo\tBAR  ", false, false)
		assert.Equal(t, "  Foo\tBAR  ", got)
	})
	t.Run("Should lowercase without collapsing", func(t *testing.T) {
		got := Normalize("Foo  BAR", true, false)
		assert.Equal(t, "foo  bar", got)
	})
	t.Run("Should map empty input to empty output", func(t *testing.T) {
		assert.Equal(t, "", Normalize("", true, true))
	})
}
