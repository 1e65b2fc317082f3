package scoring

import (
	"regexp"
	"strings"
)

var errorBlock = regexp.MustCompile(`(?s)ERRO\s*\n(.*?)\n\s*FIM_ERRO`)

// ParseErrorBlocks extracts errors written as
//
//	ERRO
//	Trecho: "..."
//	Explicação: ...
//	Sugestão: ...
//	FIM_ERRO
//
// Blocks without an excerpt or explanation are skipped.
func ParseErrorBlocks(text string) []GradedError {
	var out []GradedError
	for _, m := range errorBlock.FindAllStringSubmatch(text, -1) {
		var e GradedError
		for _, line := range strings.Split(m[1], "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "trecho":
				e.Excerpt = strings.Trim(value, `"“”`)
			case "explicação", "explicacao", "descrição", "descricao":
				e.Explanation = value
			case "sugestão", "sugestao":
				e.Suggestion = value
			}
		}
		if e.Excerpt != "" && e.Explanation != "" {
			out = append(out, e)
		}
	}
	return out
}

// StripErrorBlocks removes error blocks, leaving the surrounding prose.
func StripErrorBlocks(text string) string {
	return strings.TrimSpace(errorBlock.ReplaceAllString(text, ""))
}
