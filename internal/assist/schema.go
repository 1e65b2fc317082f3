package assist

import "github.com/abhisek/redacao/internal/llm"

func stringArray(description string, maxItems int) map[string]any {
	s := map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
	if maxItems > 0 {
		s["maxItems"] = maxItems
	}
	return s
}

// ElementsSchema is the reply of the paragraph element classifier.
var ElementsSchema = &llm.Schema{
	Name:        "paragraph-elements",
	Description: "Structural elements present in and absent from an essay paragraph",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"presentes": stringArray("Elementos encontrados no parágrafo, usando apenas os nomes da lista", 0),
			"ausentes":  stringArray("Elementos da lista que não aparecem no parágrafo", 0),
			"sugestoes": stringArray("Sugestões curtas de melhoria, em português", 2),
		},
		"required":             []any{"presentes", "ausentes", "sugestoes"},
		"additionalProperties": false,
	},
}

// connectivesSchema is built per marker set since the category enum comes
// from the set.
func connectivesSchema(categories []string) *llm.Schema {
	enum := make([]any, len(categories))
	for i, c := range categories {
		enum[i] = c
	}
	return &llm.Schema{
		Name:        "essay-connectives",
		Description: "Discourse connectives used in an essay",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"conectivos": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"texto":     map[string]any{"type": "string", "description": "O conectivo exatamente como aparece no texto"},
							"categoria": map[string]any{"type": "string", "enum": enum},
						},
						"required":             []any{"texto", "categoria"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"conectivos"},
			"additionalProperties": false,
		},
	}
}

// GradeSchema is the reply of the competency justifier.
var GradeSchema = &llm.Schema{
	Name:        "competency-grade",
	Description: "Proposed ENEM competency grade with a short justification",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nota": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     200,
				"description": "Nota da competência: 0, 40, 80, 120, 160 ou 200",
			},
			"justificativa": map[string]any{
				"type":        "string",
				"description": "Justificativa objetiva da nota em até três frases",
			},
		},
		"required":             []any{"nota", "justificativa"},
		"additionalProperties": false,
	},
}

// ErrorsSchema is the reply of the error finder.
var ErrorsSchema = &llm.Schema{
	Name:        "competency-errors",
	Description: "Errors found in an essay for one ENEM competency",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"erros": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"trecho":     map[string]any{"type": "string"},
						"explicacao": map[string]any{"type": "string"},
						"sugestao":   map[string]any{"type": "string"},
					},
					"required":             []any{"trecho", "explicacao", "sugestao"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"erros"},
		"additionalProperties": false,
	},
}
