package assist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/llm"
	"github.com/abhisek/redacao/internal/scoring"
)

// Justifier proposes a competency grade. It implements scoring.Justifier.
type Justifier struct {
	client
}

var _ scoring.Justifier = (*Justifier)(nil)

// NewJustifier creates a Justifier.
func NewJustifier(provider llm.Provider, cfg Config, logger *log.Logger) *Justifier {
	return &Justifier{client: newClient(provider, cfg, logger)}
}

type gradeOutput struct {
	Grade         int    `json:"nota"`
	Justification string `json:"justificativa"`
}

// Justify returns the proposal as JSON understood by
// scoring.ParseJustification.
func (j *Justifier) Justify(ctx context.Context, competency, essay string, errs []scoring.GradedError) (string, error) {
	user, err := render(justifyUserTemplate, struct {
		Competency string
		Errors     []scoring.GradedError
		Essay      string
	}{competency, errs, j.truncate(essay)})
	if err != nil {
		return "", fmt.Errorf("build justify prompt: %w", err)
	}

	var out gradeOutput
	if err := j.generate(ctx, llm.PurposeJustify, justifySystemPrompt, user, GradeSchema, &out); err != nil {
		return "", err
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode grade: %w", err)
	}
	return string(b), nil
}
