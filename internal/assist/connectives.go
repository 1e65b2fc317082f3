package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/connectives"
	"github.com/abhisek/redacao/internal/llm"
	"github.com/abhisek/redacao/internal/markers"
)

// ConnectiveClassifier asks the LLM for the connectives of a text and
// locates each one. It implements connectives.ExternalClassifier.
type ConnectiveClassifier struct {
	client
	categories []string
	matcher    markers.Matcher
}

var _ connectives.ExternalClassifier = (*ConnectiveClassifier)(nil)

// NewConnectiveClassifier creates a connective classifier restricted to the
// categories of set.
func NewConnectiveClassifier(provider llm.Provider, set *markers.Set, cfg Config, logger *log.Logger) *ConnectiveClassifier {
	var cats []string
	for _, c := range set.Categories() {
		cats = append(cats, string(c))
	}
	return &ConnectiveClassifier{
		client:     newClient(provider, cfg, logger),
		categories: cats,
		matcher:    markers.NewMatcher(markers.WordBoundary),
	}
}

type connectivesOutput struct {
	Connectives []struct {
		Text     string `json:"texto"`
		Category string `json:"categoria"`
	} `json:"conectivos"`
}

// Connectives returns one occurrence per proposed connective that can be
// found in text. The n-th proposal of a phrase takes its n-th occurrence;
// proposals that cannot be located are dropped.
func (c *ConnectiveClassifier) Connectives(ctx context.Context, text string) ([]connectives.Occurrence, error) {
	user, err := render(connectivesUserTemplate, struct {
		Categories []string
		Text       string
	}{c.categories, c.truncate(text)})
	if err != nil {
		return nil, fmt.Errorf("build connectives prompt: %w", err)
	}

	var out connectivesOutput
	if err := c.generate(ctx, llm.PurposeConnectives, connectivesSystemPrompt, user,
		connectivesSchema(c.categories), &out); err != nil {
		return nil, err
	}

	folded, offsets := markers.FoldMapped(text)
	used := make(map[string]int)

	var occs []connectives.Occurrence
	for _, p := range out.Connectives {
		phrase := markers.Fold(strings.TrimSpace(p.Text))
		if phrase == "" {
			continue
		}
		spans := c.matcher.FindAll(folded, phrase)
		n := used[phrase]
		if n >= len(spans) {
			c.logger.Debug("connective not found in text", "phrase", phrase)
			continue
		}
		used[phrase] = n + 1

		sp := spans[n]
		occs = append(occs, connectives.Occurrence{
			Text:     phrase,
			Category: markers.Category(p.Category),
			Span:     markers.Span{Start: offsets[sp.Start], End: offsets[sp.End]},
			Source:   connectives.SourceExternal,
		})
	}
	return occs, nil
}
