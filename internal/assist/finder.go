package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/llm"
	"github.com/abhisek/redacao/internal/scoring"
)

// ErrorFinder asks the LLM for the errors of one competency. It is used when
// no error list is supplied.
type ErrorFinder struct {
	client
}

// NewErrorFinder creates an ErrorFinder.
func NewErrorFinder(provider llm.Provider, cfg Config, logger *log.Logger) *ErrorFinder {
	return &ErrorFinder{client: newClient(provider, cfg, logger)}
}

type errorsOutput struct {
	Errors []scoring.GradedError `json:"erros"`
}

// FindErrors returns the errors found for competency. Entries without an
// explanation are dropped.
func (f *ErrorFinder) FindErrors(ctx context.Context, competency, essay string) ([]scoring.GradedError, error) {
	user, err := render(errorsUserTemplate, struct {
		Competency string
		Essay      string
	}{competency, f.truncate(essay)})
	if err != nil {
		return nil, fmt.Errorf("build errors prompt: %w", err)
	}

	var out errorsOutput
	if err := f.generate(ctx, llm.PurposeErrors, errorsSystemPrompt, user, ErrorsSchema, &out); err != nil {
		return nil, err
	}

	errs := make([]scoring.GradedError, 0, len(out.Errors))
	for _, e := range out.Errors {
		if strings.TrimSpace(e.Explanation) == "" {
			continue
		}
		errs = append(errs, e)
	}
	return errs, nil
}
