package grading

import (
	"fmt"

	"github.com/abhisek/redacao/internal/textmetrics"
)

// CompetencyID identifies one of the five ENEM competencies.
type CompetencyID string

const (
	Comp1 CompetencyID = "comp1"
	Comp2 CompetencyID = "comp2"
	Comp3 CompetencyID = "comp3"
	Comp4 CompetencyID = "comp4"
	Comp5 CompetencyID = "comp5"
)

// Competency describes one row of the grading table.
type Competency struct {
	ID   CompetencyID
	Name string
	// Evidence lists the metric keys reported alongside the grade.
	Evidence []string
	// FilterStyle moves style suggestions out of the error list.
	FilterStyle bool
}

// Competencies returns the fixed grading table in report order.
func Competencies() []Competency {
	return []Competency{
		{
			ID:   Comp1,
			Name: "Competência 1 - Domínio da norma culta",
			Evidence: []string{
				textmetrics.KeyWordsPerSentence, textmetrics.KeyComplexSentences,
				textmetrics.KeySyntacticComplexity,
			},
			FilterStyle: true,
		},
		{
			ID:   Comp2,
			Name: "Competência 2 - Compreensão do tema",
			Evidence: []string{
				textmetrics.KeyWordCount, textmetrics.KeySentenceCount,
				textmetrics.KeyUniqueWords, textmetrics.KeyLexicalDiversity,
			},
		},
		{
			ID:   Comp3,
			Name: "Competência 3 - Argumentação",
			Evidence: []string{
				textmetrics.KeyParagraphCount, textmetrics.KeySentencesPerParagraph,
				textmetrics.KeyConnectives, textmetrics.KeyNounPhrases, textmetrics.KeyVerbPhrases,
			},
		},
		{
			ID:   Comp4,
			Name: "Competência 4 - Coesão textual",
			Evidence: []string{
				textmetrics.KeyConnectives, textmetrics.KeyWordsPerSentence,
				textmetrics.KeyReferenceCohesion, textmetrics.KeySentenceSimilarity,
			},
		},
		{
			ID:   Comp5,
			Name: "Competência 5 - Proposta de intervenção",
			Evidence: []string{
				textmetrics.KeySentenceCount, textmetrics.KeyWordCount,
				textmetrics.KeyParagraphCount,
			},
		},
	}
}

// ParseCompetencyID accepts "comp1".."comp5" and the bare digits "1".."5".
func ParseCompetencyID(s string) (CompetencyID, error) {
	for _, c := range Competencies() {
		if s == string(c.ID) || "comp"+s == string(c.ID) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("unknown competency: %q", s)
}

func evidence(c Competency, m textmetrics.Metrics) map[string]float64 {
	all := m.Map()
	out := make(map[string]float64, len(c.Evidence))
	for _, k := range c.Evidence {
		out[k] = all[k]
	}
	return out
}
