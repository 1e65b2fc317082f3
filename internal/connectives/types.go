// Package connectives finds discourse connectives in essay text and scores
// how varied and well distributed they are.
package connectives

import (
	"context"

	"github.com/abhisek/redacao/internal/markers"
)

// Sources of an occurrence.
const (
	SourceRules    = "rules"
	SourceExternal = "external"
)

// Occurrence is one connective found in the text. Span is a byte range into
// the analyzed text; Text is the folded phrase.
type Occurrence struct {
	Text      string           `json:"text"`
	Category  markers.Category `json:"category"`
	Span      markers.Span     `json:"span"`
	Frequency int              `json:"frequency"`
	Source    string           `json:"source"`
}

// Analysis is the connective profile of a text.
type Analysis struct {
	Occurrences    []Occurrence             `json:"occurrences"`
	CategoryCounts map[markers.Category]int `json:"category_counts"`
	Repeated       map[string]int           `json:"repeated"`
	Score          float64                  `json:"score"`
	Feedback       []string                 `json:"feedback"`
}

// CategoriesUsed returns how many categories have at least one occurrence.
func (a Analysis) CategoriesUsed() int {
	n := 0
	for _, c := range a.CategoryCounts {
		if c > 0 {
			n++
		}
	}
	return n
}

// ExternalClassifier proposes connectives the phrase tables may have missed.
type ExternalClassifier interface {
	Connectives(ctx context.Context, text string) ([]Occurrence, error)
}

// Config holds the scoring constants.
type Config struct {
	// IdealPerCategory is the count at which a category's quantity share saturates.
	IdealPerCategory float64
	// RepeatPenalty is subtracted from RepeatBudget per repeated phrase.
	RepeatPenalty float64
	RepeatBudget  float64
	// VarietyWeight and QuantityWeight scale the variety and quantity shares.
	VarietyWeight  float64
	QuantityWeight float64
	// ExcellentVariety is the category count that earns the variety praise.
	ExcellentVariety int
	Strictness       markers.Strictness
}

// DefaultConfig returns the canonical constant set.
func DefaultConfig() Config {
	return Config{
		IdealPerCategory: 3,
		RepeatPenalty:    0.05,
		RepeatBudget:     0.2,
		VarietyWeight:    0.5,
		QuantityWeight:   0.3,
		ExcellentVariety: 5,
		Strictness:       markers.WordBoundary,
	}
}
