// Package scoring turns graded error lists into ENEM competency bands.
package scoring

import (
	"context"
	"encoding/json"
	"strings"
)

// Category is an error class counted for band selection.
type Category string

const (
	Sintaxe         Category = "sintaxe"
	Ortografia      Category = "ortografia"
	Concordancia    Category = "concordancia"
	Pontuacao       Category = "pontuacao"
	AcentuacaoCrase Category = "acentuacao_crase"
	Registro        Category = "registro"
)

// Categories lists every category in report order.
var Categories = []Category{Sintaxe, Ortografia, Concordancia, Pontuacao, AcentuacaoCrase, Registro}

// Bands are the valid competency grades.
var Bands = []int{0, 40, 80, 120, 160, 200}

// MaxBand is the top band of a single competency.
const MaxBand = 200

// GradedError is one error reported by a grading collaborator.
type GradedError struct {
	Excerpt     string `json:"trecho"`
	Explanation string `json:"explicacao"`
	Suggestion  string `json:"sugestao"`
}

// UnmarshalJSON accepts both the Portuguese and English field names.
func (e *GradedError) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := raw[k].(string); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}
	e.Excerpt = pick("trecho", "excerpt")
	e.Explanation = pick("explicacao", "explicação", "explanation", "descricao", "descrição")
	e.Suggestion = pick("sugestao", "sugestão", "suggestion")
	return nil
}

// Counts maps each category to its number of matching errors.
type Counts map[Category]int

// CompetencyGrade is the scored result for one competency.
type CompetencyGrade struct {
	Band     int `json:"band"`
	BaseBand int `json:"base_band"`
	// Proposed is the snapped external proposal, nil when none was parsed.
	Proposed *int `json:"proposed,omitempty"`
	// Adjusted is set when the proposal was overridden by the base band.
	Adjusted         bool          `json:"adjusted"`
	Counts           Counts        `json:"counts"`
	Total            int           `json:"total"`
	Justification    string        `json:"justification,omitempty"`
	Errors           []GradedError `json:"errors"`
	StyleSuggestions []GradedError `json:"style_suggestions,omitempty"`
}

// Justifier proposes a grade with its justification for one competency. The
// returned text is fed to ParseJustification.
type Justifier interface {
	Justify(ctx context.Context, competency, essay string, errs []GradedError) (string, error)
}
