package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/llm"
	"github.com/abhisek/redacao/internal/markers"
	"github.com/abhisek/redacao/internal/structure"
)

// ElementClassifier asks the LLM which structural elements a paragraph
// carries. It implements structure.ExternalClassifier.
type ElementClassifier struct {
	client
	set *markers.Set
}

var _ structure.ExternalClassifier = (*ElementClassifier)(nil)

// NewElementClassifier creates an element classifier over the vocabularies
// of set.
func NewElementClassifier(provider llm.Provider, set *markers.Set, cfg Config, logger *log.Logger) *ElementClassifier {
	return &ElementClassifier{client: newClient(provider, cfg, logger), set: set}
}

type elementsOutput struct {
	Present     []string `json:"presentes"`
	Absent      []string `json:"ausentes"`
	Suggestions []string `json:"sugestoes"`
}

// ClassifyElements returns the LLM's view of the paragraph. Element names
// are folded; the score is present / (present + absent), 0 when both are
// empty. Vocabulary filtering is left to the caller.
func (c *ElementClassifier) ClassifyElements(ctx context.Context, text string, t structure.ParagraphType) (*structure.ElementAnalysis, error) {
	user, err := render(elementsUserTemplate, struct {
		Type       structure.ParagraphType
		Vocabulary []string
		Text       string
	}{t, c.set.Vocabulary(t.Kind()), text})
	if err != nil {
		return nil, fmt.Errorf("build elements prompt: %w", err)
	}

	var out elementsOutput
	if err := c.generate(ctx, llm.PurposeElements, elementsSystemPrompt, user, ElementsSchema, &out); err != nil {
		return nil, err
	}

	present := foldAll(out.Present)
	absent := foldAll(out.Absent)

	var score float64
	if n := len(present) + len(absent); n > 0 {
		score = float64(len(present)) / float64(n)
	}

	return &structure.ElementAnalysis{
		Present:     present,
		Absent:      absent,
		Score:       score,
		Suggestions: trimAll(out.Suggestions),
	}, nil
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := markers.Fold(strings.TrimSpace(s)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
