package textnorm

import "strings"

// Normalize optionally collapses whitespace and lowercases text before
// chunking. Collapsing replaces every whitespace run (spaces, tabs,
// newlines) with a single space and trims the ends; lowercasing is applied
// after collapsing so output is byte-for-byte deterministic.
func Normalize(text string, lower, collapseWhitespace bool) string {
	cleaned := text
	if collapseWhitespace {
		cleaned = strings.Join(strings.Fields(text), " ")
	}
	if lower {
		cleaned = strings.ToLower(cleaned)
	}
	return cleaned
}
