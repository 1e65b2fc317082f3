package scoring

import (
	"strings"

	"github.com/abhisek/redacao/internal/markers"
)

var styleKeywords = []string{
	"pode ser melhorada", "poderia ser", "considerar", "sugerimos",
	"recomendamos", "ficaria melhor", "seria preferível", "opcionalmente",
	"para aprimorar", "para enriquecer", "estilo", "clareza",
	"mais elegante", "sugestão de melhoria", "alternativa", "opcional",
}

// IsStyleSuggestion reports whether an error reads as an optional style
// remark rather than a deviation from the norm.
func IsStyleSuggestion(e GradedError) bool {
	text := markers.Fold(e.Explanation + " " + e.Suggestion)
	for _, kw := range styleKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// SplitStyle separates real errors from style suggestions, keeping order.
func SplitStyle(errs []GradedError) (errors, style []GradedError) {
	errors = []GradedError{}
	for _, e := range errs {
		if IsStyleSuggestion(e) {
			style = append(style, e)
			continue
		}
		errors = append(errors, e)
	}
	return errors, style
}
