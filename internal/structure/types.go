// Package structure classifies essay paragraphs and detects the structural
// elements each paragraph type is expected to carry.
package structure

import (
	"context"
	"fmt"

	"github.com/abhisek/redacao/internal/connectives"
	"github.com/abhisek/redacao/internal/markers"
)

// ParagraphType is the role of a paragraph in the essay.
type ParagraphType string

const (
	Introduction ParagraphType = "introduction"
	Development1 ParagraphType = "development_1"
	Development2 ParagraphType = "development_2"
	Conclusion   ParagraphType = "conclusion"
)

// NoPosition marks a paragraph whose ordinal position is unknown.
const NoPosition = -1

// Kind maps a paragraph type onto its marker table.
func (t ParagraphType) Kind() markers.Kind {
	switch t {
	case Introduction:
		return markers.KindIntroduction
	case Conclusion:
		return markers.KindConclusion
	default:
		return markers.KindDevelopment
	}
}

// ParseParagraphType accepts the canonical names.
func ParseParagraphType(s string) (ParagraphType, error) {
	switch t := ParagraphType(s); t {
	case Introduction, Development1, Development2, Conclusion:
		return t, nil
	}
	return "", fmt.Errorf("unknown paragraph type: %q", s)
}

// ElementAnalysis reports which structural elements a paragraph carries.
type ElementAnalysis struct {
	Present     []string `json:"present"`
	Absent      []string `json:"absent"`
	Score       float64  `json:"score"`
	Suggestions []string `json:"suggestions"`
}

func (a ElementAnalysis) clone() ElementAnalysis {
	return ElementAnalysis{
		Present:     copyStrings(a.Present),
		Absent:      copyStrings(a.Absent),
		Score:       a.Score,
		Suggestions: copyStrings(a.Suggestions),
	}
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ParagraphAnalysis is the full result for one paragraph.
type ParagraphAnalysis struct {
	Position  int             `json:"position"`
	Text      string          `json:"text"`
	WordCount int             `json:"word_count"`
	Type      ParagraphType   `json:"type"`
	Elements  ElementAnalysis `json:"elements"`
	Feedback  string          `json:"feedback"`
	Tips      []string        `json:"tips"`
	// Connectives is the paragraph's own cohesion analysis.
	Connectives *connectives.Analysis `json:"connectives,omitempty"`
	// External is set when an external classifier contributed.
	External bool `json:"external"`
	Cached   bool `json:"cached"`
}

// ExternalClassifier proposes an element analysis for a paragraph. It is
// expected to be slow and unreliable.
type ExternalClassifier interface {
	ClassifyElements(ctx context.Context, text string, t ParagraphType) (*ElementAnalysis, error)
}
