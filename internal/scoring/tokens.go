// Package scoring holds the token handling shared by the scorer
// implementations.
package scoring

import (
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Tokenize lowercases text and extracts its word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// IDF computes smoothed inverse-document-frequency weights over the given
// documents, one entry per distinct token. Tokens never seen get the
// out-of-vocabulary weight via OOV.
type IDF struct {
	weights map[string]float64
	oov     float64
}

// NewIDF builds IDF weights from the documents' token sets.
func NewIDF(documents [][]string) IDF {
	df := make(map[string]int)
	for _, tokens := range documents {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	n := float64(len(documents))
	weights := make(map[string]float64, len(df))
	for term, count := range df {
		weights[term] = math.Log((1+n)/(1+float64(count))) + 1.0
	}
	return IDF{
		weights: weights,
		oov:     math.Log(1+n) + 1.0,
	}
}

// Weight returns the IDF weight for a token.
func (i IDF) Weight(token string) float64 {
	if w, ok := i.weights[token]; ok {
		return w
	}
	return i.oov
}

// Uniform is a weighting that scores every token equally.
var Uniform = func(string) float64 { return 1.0 }
