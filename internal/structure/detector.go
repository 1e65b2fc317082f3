package structure

import (
	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/logging"
	"github.com/abhisek/redacao/internal/markers"
)

// RetrySuggestion is the only suggestion of a failed detection.
const RetrySuggestion = "Não foi possível analisar o texto. Tente novamente."

// Detector checks a paragraph against its type's element table.
type Detector struct {
	set     *markers.Set
	matcher markers.Matcher
	logger  *log.Logger
}

// NewDetector creates a Detector.
func NewDetector(set *markers.Set, strictness markers.Strictness, logger *log.Logger) *Detector {
	return &Detector{
		set:     set,
		matcher: markers.NewMatcher(strictness),
		logger:  logging.OrDiscard(logger),
	}
}

// Detect partitions the type's elements into present and absent. Each absent
// element contributes its first suggestion, in table order.
func (d *Detector) Detect(text string, t ParagraphType) (a ElementAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("element detection failed", "panic", r, "type", t)
			a = ElementAnalysis{
				Present:     []string{},
				Absent:      []string{},
				Suggestions: []string{RetrySuggestion},
			}
		}
	}()

	folded := markers.Fold(text)
	elements := d.set.Elements(t.Kind())

	a = ElementAnalysis{
		Present:     []string{},
		Absent:      []string{},
		Suggestions: []string{},
	}
	for _, e := range elements {
		if d.matcher.ContainsAny(folded, e.Triggers) {
			a.Present = append(a.Present, e.Name)
			continue
		}
		a.Absent = append(a.Absent, e.Name)
		if s, ok := d.set.FirstSuggestion(e.Name); ok {
			a.Suggestions = append(a.Suggestions, s)
		}
	}

	if len(elements) > 0 {
		a.Score = float64(len(a.Present)) / float64(len(elements))
	}
	return a
}
