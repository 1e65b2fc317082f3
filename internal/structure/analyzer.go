package structure

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/redacao/internal/connectives"
	"github.com/abhisek/redacao/internal/logging"
	"github.com/abhisek/redacao/internal/markers"
	"github.com/abhisek/redacao/internal/nlp"
)

// ErrPoolBusy is returned when no worker slot frees up before the deadline.
var ErrPoolBusy = errors.New("structure: external worker pool busy")

// AnalyzerConfig tunes paragraph analysis.
type AnalyzerConfig struct {
	// Workers bounds concurrent external classifier calls.
	Workers int
	// Timeout bounds one external call, including waiting for a slot.
	Timeout time.Duration
	// Paragraphs outside [MinWords, MaxWords] skip the external classifier.
	MinWords int
	MaxWords int

	// Caps applied to external results before combining.
	MaxExternalPresent     int
	MaxExternalAbsent      int
	MaxExternalSuggestions int

	CacheSize  int
	CacheTTL   time.Duration
	Strictness markers.Strictness
	Combiner   CombinerConfig
}

// DefaultAnalyzerConfig returns the defaults used by the CLI.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Workers:                3,
		Timeout:                10 * time.Second,
		MinWords:               20,
		MaxWords:               300,
		MaxExternalPresent:     3,
		MaxExternalAbsent:      3,
		MaxExternalSuggestions: 2,
		CacheSize:              50,
		CacheTTL:               180 * time.Second,
		Strictness:             markers.Substring,
		Combiner:               DefaultCombinerConfig(),
	}
}

// Analyzer runs classification, detection and the optional external
// classifier for each paragraph.
type Analyzer struct {
	set        *markers.Set
	classifier *Classifier
	detector   *Detector
	external   ExternalClassifier
	cohesion   *connectives.Analyzer
	cache      *Cache
	slots      chan struct{}
	cfg        AnalyzerConfig
	logger     *log.Logger
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithExternal enables an external element classifier.
func WithExternal(ext ExternalClassifier) Option {
	return func(a *Analyzer) { a.external = ext }
}

// WithCache replaces the default cache, e.g. to inject a clock.
func WithCache(c *Cache) Option {
	return func(a *Analyzer) { a.cache = c }
}

// WithConnectives replaces the per-paragraph connective analyzer built from
// the marker set with default settings.
func WithConnectives(c *connectives.Analyzer) Option {
	return func(a *Analyzer) { a.cohesion = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) { a.logger = logging.OrDiscard(l) }
}

// NewAnalyzer creates an Analyzer. A nil set uses the built-in tables.
func NewAnalyzer(set *markers.Set, cfg AnalyzerConfig, opts ...Option) *Analyzer {
	if set == nil {
		set = markers.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	a := &Analyzer{
		set:    set,
		cfg:    cfg,
		slots:  make(chan struct{}, cfg.Workers),
		logger: logging.Discard(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.cache == nil {
		a.cache = NewCache(cfg.CacheSize, cfg.CacheTTL, nil)
	}
	if a.cohesion == nil {
		a.cohesion = connectives.NewAnalyzer(set, connectives.DefaultConfig())
	}
	a.classifier = NewClassifier(set, cfg.Strictness, a.logger)
	a.detector = NewDetector(set, cfg.Strictness, a.logger)
	return a
}

// AnalyzeParagraph analyzes one paragraph. position is its ordinal in the
// essay or NoPosition. It never fails; external problems only drop the
// external contribution.
func (a *Analyzer) AnalyzeParagraph(ctx context.Context, text string, position int) ParagraphAnalysis {
	t := a.classifier.Classify(text, position)
	words := len(strings.Fields(text))

	out := ParagraphAnalysis{
		Position:  position,
		Text:      text,
		WordCount: words,
		Type:      t,
	}

	if cached, ok := a.cache.Get(text, t); ok {
		out.Elements = cached
		out.Cached = true
	} else {
		det := a.detector.Detect(text, t)
		elements := det
		cacheable := true

		if a.external != nil && words >= a.cfg.MinWords && words <= a.cfg.MaxWords {
			ext, err := a.classifyExternal(ctx, text, t)
			if err != nil {
				a.logger.Warn("external element classification dropped", "position", position, "err", err)
				cacheable = false
			} else {
				elements = Combine(det, a.sanitize(ext, t), a.cfg.Combiner)
				out.External = true
			}
		}

		if cacheable {
			a.cache.Put(text, t, elements)
		}
		out.Elements = elements
	}

	out.Feedback = ScoreFeedback(out.Elements.Score, t)
	out.Tips = Tips(t, out.Elements.Score)
	cohesion := a.cohesion.Analyze(text)
	out.Connectives = &cohesion
	return out
}

// AnalyzeEssay splits an essay into paragraphs and analyzes them in order.
func (a *Analyzer) AnalyzeEssay(ctx context.Context, essay string) []ParagraphAnalysis {
	paragraphs := nlp.SplitParagraphs(essay)
	results := make([]ParagraphAnalysis, len(paragraphs))

	var g errgroup.Group
	for i, p := range paragraphs {
		g.Go(func() error {
			results[i] = a.AnalyzeParagraph(ctx, p, i)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// classifyExternal runs the external classifier on a worker slot. The call
// is abandoned after the timeout; its slot is released once it returns.
func (a *Analyzer) classifyExternal(ctx context.Context, text string, t ParagraphType) (*ElementAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	select {
	case a.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ErrPoolBusy
	}

	type result struct {
		analysis *ElementAnalysis
		err      error
	}
	done := make(chan result, 1)

	go func() {
		defer func() { <-a.slots }()
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: errors.New("external classifier panicked")}
			}
		}()
		ea, err := a.external.ClassifyElements(ctx, text, t)
		done <- result{analysis: ea, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		if r.analysis == nil {
			return nil, errors.New("external classifier returned no analysis")
		}
		return r.analysis, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// sanitize keeps only element names known for the type and applies the
// configured caps.
func (a *Analyzer) sanitize(ext *ElementAnalysis, t ParagraphType) *ElementAnalysis {
	known := toSet(a.set.Vocabulary(t.Kind()))
	keep := func(in []string, limit int) []string {
		out := []string{}
		for _, e := range dedupe(in) {
			if known[e] && len(out) < limit {
				out = append(out, e)
			}
		}
		return out
	}

	suggestions := []string{}
	for _, s := range dedupe(ext.Suggestions) {
		if strings.TrimSpace(s) != "" && len(suggestions) < a.cfg.MaxExternalSuggestions {
			suggestions = append(suggestions, s)
		}
	}

	score := ext.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return &ElementAnalysis{
		Present:     keep(ext.Present, a.cfg.MaxExternalPresent),
		Absent:      keep(ext.Absent, a.cfg.MaxExternalAbsent),
		Score:       score,
		Suggestions: suggestions,
	}
}
