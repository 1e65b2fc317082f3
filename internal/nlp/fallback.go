package nlp

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/logging"
)

// FallbackParser tries primary and falls back to secondary on error.
type FallbackParser struct {
	primary   Parser
	secondary Parser
	logger    *log.Logger
}

// WithFallback wraps primary so that failures are served by secondary.
// A nil primary returns secondary unchanged.
func WithFallback(primary, secondary Parser, logger *log.Logger) Parser {
	if primary == nil {
		return secondary
	}
	return &FallbackParser{primary: primary, secondary: secondary, logger: logging.OrDiscard(logger)}
}

// Name reports the primary parser's name. The doc's Parser field tells which
// parser actually served a request.
func (f *FallbackParser) Name() string { return f.primary.Name() }

// Parse runs primary, then secondary when primary fails.
func (f *FallbackParser) Parse(ctx context.Context, text string) (*Doc, error) {
	doc, err := f.primary.Parse(ctx, text)
	if err == nil && doc != nil {
		return served(doc, f.primary), nil
	}
	f.logger.Warn("parser unavailable, using fallback",
		"parser", f.primary.Name(), "fallback", f.secondary.Name(), "err", err)
	doc, err = f.secondary.Parse(ctx, text)
	if err != nil || doc == nil {
		return doc, err
	}
	return served(doc, f.secondary), nil
}

func served(doc *Doc, p Parser) *Doc {
	if doc.Parser == "" {
		doc.Parser = p.Name()
	}
	return doc
}
