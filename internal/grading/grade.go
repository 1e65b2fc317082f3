package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/redacao/internal/scoring"
	"github.com/abhisek/redacao/internal/store"
)

// Request is one essay to grade. Errors holds the supplied error list per
// competency; a competency absent from the map is graded from the error
// finder when one is configured and from an empty list otherwise.
type Request struct {
	Essay  string
	Theme  string
	Errors map[CompetencyID][]scoring.GradedError
}

// CompetencyResult is the grade of one competency.
type CompetencyResult struct {
	ID   CompetencyID `json:"id"`
	Name string       `json:"name"`
	scoring.CompetencyGrade
	Evidence map[string]float64 `json:"evidence"`
	// ErrorSource is "supplied", "external" or "none".
	ErrorSource string `json:"error_source"`
}

// EssayGrade is the result of a grading run.
type EssayGrade struct {
	RunID        string                            `json:"run_id"`
	CreatedAt    time.Time                         `json:"created_at"`
	Theme        string                            `json:"theme,omitempty"`
	Competencies map[CompetencyID]CompetencyResult `json:"competencies"`
	Total        int                               `json:"total"`
	Offline      bool                              `json:"offline"`
	Analysis     Analysis                          `json:"analysis"`
}

// Ordered returns the competency results in table order.
func (g *EssayGrade) Ordered() []CompetencyResult {
	out := make([]CompetencyResult, 0, len(g.Competencies))
	for _, c := range Competencies() {
		if r, ok := g.Competencies[c.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// GradeEssay analyzes the essay and grades every competency. Collaborator
// failures degrade to the deterministic grade; the only error returned is
// cancellation of ctx.
func (s *Service) GradeEssay(ctx context.Context, req Request) (*EssayGrade, error) {
	analysis := s.AnalyzeEssay(ctx, req.Essay)

	results := make([]CompetencyResult, len(s.competencies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, c := range s.competencies {
		g.Go(func() error {
			results[i] = s.gradeCompetency(gctx, c, req, analysis)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("grade essay: %w", err)
	}

	grade := &EssayGrade{
		RunID:        uuid.NewString(),
		CreatedAt:    s.now(),
		Theme:        req.Theme,
		Competencies: make(map[CompetencyID]CompetencyResult, len(results)),
		Offline:      !s.Online(),
		Analysis:     analysis,
	}
	for _, r := range results {
		grade.Competencies[r.ID] = r
		grade.Total += r.Band
	}

	s.persist(ctx, grade)
	return grade, nil
}

func (s *Service) gradeCompetency(ctx context.Context, c Competency, req Request, a Analysis) CompetencyResult {
	errs, source := s.errorsFor(ctx, c, req)

	var style []scoring.GradedError
	if c.FilterStyle {
		errs, style = scoring.SplitStyle(errs)
	}

	var justification string
	if s.justifier != nil {
		jctx, cancel := context.WithTimeout(ctx, s.cfg.ExternalTimeout)
		j, err := s.justifier.Justify(jctx, c.Name, req.Essay, errs)
		cancel()
		if err != nil {
			s.logger.Warn("justifier failed, using base band", "competency", c.ID, "err", err)
		} else {
			justification = j
		}
	}

	grade := scoring.Aggregate(errs, justification)
	grade.StyleSuggestions = style

	return CompetencyResult{
		ID:              c.ID,
		Name:            c.Name,
		CompetencyGrade: grade,
		Evidence:        evidence(c, a.Metrics),
		ErrorSource:     source,
	}
}

func (s *Service) errorsFor(ctx context.Context, c Competency, req Request) ([]scoring.GradedError, string) {
	if errs, ok := req.Errors[c.ID]; ok {
		return errs, "supplied"
	}
	if s.finder == nil || strings.TrimSpace(req.Essay) == "" {
		return nil, "none"
	}

	fctx, cancel := context.WithTimeout(ctx, s.cfg.ExternalTimeout)
	defer cancel()
	errs, err := s.finder.FindErrors(fctx, c.Name, req.Essay)
	if err != nil {
		s.logger.Warn("error finder failed, grading an empty list", "competency", c.ID, "err", err)
		return nil, "none"
	}
	return errs, "external"
}

func (s *Service) persist(ctx context.Context, grade *EssayGrade) {
	if s.runs == nil {
		return
	}
	data, err := json.Marshal(grade)
	if err != nil {
		s.logger.Warn("failed to encode grading run", "err", err)
		return
	}

	// Saved even when ctx is cancelled after grading finished.
	ctx = context.WithoutCancel(ctx)
	run := &store.Run{
		RunID:     grade.RunID,
		Timestamp: grade.CreatedAt,
		Theme:     grade.Theme,
		Total:     grade.Total,
		Offline:   grade.Offline,
		Data:      data,
	}
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Warn("failed to save grading run", "err", err)
		return
	}
	if s.cfg.RunHistory > 0 {
		if err := s.runs.Prune(ctx, s.cfg.RunHistory); err != nil {
			s.logger.Warn("failed to prune grading runs", "err", err)
		}
	}
}
