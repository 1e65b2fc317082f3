package embed

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// LexicalSimilarity is a bag-of-words cosine over lower-cased word counts.
// It needs no model, so it backs sentence similarity when no embedder is
// configured.
type LexicalSimilarity struct{}

// Name returns "lexical".
func (LexicalSimilarity) Name() string { return "lexical" }

// Similarity returns the term-frequency cosine of a and b.
func (LexicalSimilarity) Similarity(_ context.Context, a, b string) (float64, error) {
	ta, tb := termCounts(a), termCounts(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, nil
	}

	var dot, na, nb float64
	for w, ca := range ta {
		na += float64(ca * ca)
		if cb, ok := tb[w]; ok {
			dot += float64(ca * cb)
		}
	}
	for _, cb := range tb {
		nb += float64(cb * cb)
	}
	return clamp01(dot / (math.Sqrt(na) * math.Sqrt(nb))), nil
}

func termCounts(s string) map[string]int {
	out := make(map[string]int)
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[w]++
	}
	return out
}
