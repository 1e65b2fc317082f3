package scoring

import (
	"strings"

	"github.com/abhisek/redacao/internal/markers"
)

var categoryKeywords = map[Category][]string{
	Sintaxe:         {"sintax", "sintát", "estrutura", "regência"},
	Ortografia:      {"ortograf", "escrita", "grafia"},
	Concordancia:    {"concord", "verbal", "nominal"},
	Pontuacao:       {"pontu", "vírgula"},
	AcentuacaoCrase: {"acento", "acentua", "crase"},
	Registro:        {"coloquial", "registro", "informal", "oralidade"},
}

// Categorize returns every category whose keywords occur in the error's
// explanation. An error may match several categories or none.
func Categorize(e GradedError) []Category {
	text := markers.Fold(e.Explanation)
	var out []Category
	for _, c := range Categories {
		for _, kw := range categoryKeywords[c] {
			if strings.Contains(text, kw) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Count tallies categories across errors. Every category is present in the
// result, zero when unmatched.
func Count(errs []GradedError) Counts {
	counts := make(Counts, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, e := range errs {
		for _, c := range Categorize(e) {
			counts[c]++
		}
	}
	return counts
}
