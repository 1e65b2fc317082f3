package grading

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/redacao/internal/connectives"
	"github.com/abhisek/redacao/internal/structure"
	"github.com/abhisek/redacao/internal/textmetrics"
)

// Analysis is the deterministic profile of an essay, enriched by the
// external classifiers when they are configured and answer in time.
type Analysis struct {
	Metrics     textmetrics.Metrics           `json:"metrics"`
	Paragraphs  []structure.ParagraphAnalysis `json:"paragraphs"`
	Connectives connectives.Analysis          `json:"connectives"`
}

// AnalyzeEssay computes metrics, paragraph structure and connectives. It
// never fails; collaborator failures fall back to the deterministic result.
func (s *Service) AnalyzeEssay(ctx context.Context, essay string) Analysis {
	var a Analysis

	// Each goroutine writes its own field and none returns an error.
	var g errgroup.Group
	g.Go(func() error {
		a.Metrics = s.metrics.Analyze(ctx, essay)
		return nil
	})
	g.Go(func() error {
		a.Paragraphs = s.paragraphs.AnalyzeEssay(ctx, essay)
		return nil
	})
	g.Go(func() error {
		a.Connectives = s.analyzeConnectives(ctx, essay)
		return nil
	})
	_ = g.Wait()

	return a
}

func (s *Service) analyzeConnectives(ctx context.Context, essay string) connectives.Analysis {
	base := s.connectives.Analyze(essay)
	if s.connExt == nil || strings.TrimSpace(essay) == "" {
		return base
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ExternalTimeout)
	defer cancel()

	ext, err := s.connExt.Connectives(ctx, essay)
	if err != nil {
		s.logger.Warn("external connective classifier failed, using rules only", "err", err)
		return base
	}
	return s.connectives.Merge(essay, base, ext)
}
