// Package grading runs the full essay pipeline: text metrics, paragraph
// structure, connectives and the five competency grades.
package grading

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/assist"
	"github.com/abhisek/redacao/internal/connectives"
	"github.com/abhisek/redacao/internal/embed"
	"github.com/abhisek/redacao/internal/llm"
	"github.com/abhisek/redacao/internal/logging"
	"github.com/abhisek/redacao/internal/markers"
	"github.com/abhisek/redacao/internal/nlp"
	"github.com/abhisek/redacao/internal/scoring"
	"github.com/abhisek/redacao/internal/store"
	"github.com/abhisek/redacao/internal/structure"
	"github.com/abhisek/redacao/internal/textmetrics"
)

// ErrorFinder lists the errors of one competency when none are supplied.
type ErrorFinder interface {
	FindErrors(ctx context.Context, competency, essay string) ([]scoring.GradedError, error)
}

// Service coordinates the analysis components and optional collaborators.
// It is safe for concurrent use.
type Service struct {
	cfg          Config
	set          *markers.Set
	competencies []Competency

	metrics     *textmetrics.Engine
	paragraphs  *structure.Analyzer
	connectives *connectives.Analyzer

	elements   structure.ExternalClassifier
	connExt    connectives.ExternalClassifier
	justifier  scoring.Justifier
	finder     ErrorFinder
	runs       store.RunRepo
	provider   llm.Provider
	assistCfg  assist.Config
	parser     nlp.Parser
	similarity embed.Similarity
	now        func() time.Time
	logger     *log.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithElementClassifier enables external paragraph element classification.
func WithElementClassifier(c structure.ExternalClassifier) Option {
	return func(s *Service) { s.elements = c }
}

// WithConnectiveClassifier enables external connective proposals.
func WithConnectiveClassifier(c connectives.ExternalClassifier) Option {
	return func(s *Service) { s.connExt = c }
}

// WithJustifier enables external grade proposals.
func WithJustifier(j scoring.Justifier) Option {
	return func(s *Service) { s.justifier = j }
}

// WithErrorFinder enables external error finding for competencies graded
// without an error list.
func WithErrorFinder(f ErrorFinder) Option {
	return func(s *Service) { s.finder = f }
}

// WithProvider backs every collaborator not set explicitly with provider.
func WithProvider(p llm.Provider, cfg assist.Config) Option {
	return func(s *Service) {
		s.provider = p
		s.assistCfg = cfg
	}
}

// WithRunRepo persists every grading run.
func WithRunRepo(r store.RunRepo) Option {
	return func(s *Service) { s.runs = r }
}

// WithParser replaces the parser chosen from the configuration.
func WithParser(p nlp.Parser) Option {
	return func(s *Service) { s.parser = p }
}

// WithSimilarity replaces the sentence similarity chosen from the configuration.
func WithSimilarity(sim embed.Similarity) Option {
	return func(s *Service) { s.similarity = sim }
}

// WithClock sets the clock used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = logging.OrDiscard(l) }
}

// NewService builds a Service. The marker tables are loaded here, so a bad
// marker file is reported before any essay is read.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	set := markers.Default()
	if cfg.MarkersPath != "" {
		loaded, err := markers.Load(cfg.MarkersPath)
		if err != nil {
			return nil, fmt.Errorf("load markers: %w", err)
		}
		set = loaded
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	s := &Service{
		cfg:          cfg,
		set:          set,
		competencies: Competencies(),
		now:          time.Now,
		logger:       logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}

	if s.provider != nil {
		s.wireProvider()
	}
	if s.parser == nil {
		s.parser = s.defaultParser()
	}
	if s.similarity == nil {
		s.similarity = s.defaultSimilarity()
	}

	ccfg := connectives.DefaultConfig()
	ccfg.Strictness = cfg.ConnectiveStrictness
	s.connectives = connectives.NewAnalyzer(set, ccfg)
	s.metrics = textmetrics.NewEngine(s.parser, s.similarity, s.connectives, s.logger)

	acfg := structure.DefaultAnalyzerConfig()
	acfg.Workers = cfg.Workers
	acfg.Timeout = cfg.ExternalTimeout
	acfg.Strictness = cfg.ElementStrictness
	aopts := []structure.Option{structure.WithLogger(s.logger), structure.WithConnectives(s.connectives)}
	if s.elements != nil {
		aopts = append(aopts, structure.WithExternal(s.elements))
	}
	s.paragraphs = structure.NewAnalyzer(set, acfg, aopts...)

	return s, nil
}

func (s *Service) wireProvider() {
	if s.elements == nil {
		s.elements = assist.NewElementClassifier(s.provider, s.set, s.assistCfg, s.logger)
	}
	if s.connExt == nil {
		s.connExt = assist.NewConnectiveClassifier(s.provider, s.set, s.assistCfg, s.logger)
	}
	if s.justifier == nil {
		s.justifier = assist.NewJustifier(s.provider, s.assistCfg, s.logger)
	}
	if s.finder == nil {
		s.finder = assist.NewErrorFinder(s.provider, s.assistCfg, s.logger)
	}
}

func (s *Service) defaultParser() nlp.Parser {
	rules := nlp.NewRuleParser()
	if s.cfg.UDPipe.Endpoint == "" {
		return rules
	}
	return nlp.WithFallback(nlp.NewUDPipeParser(s.cfg.UDPipe), rules, s.logger)
}

func (s *Service) defaultSimilarity() embed.Similarity {
	if s.cfg.Ollama.Endpoint == "" {
		return embed.LexicalSimilarity{}
	}
	e := embed.NewOllamaEmbedder(s.cfg.Ollama)
	if !e.Available() {
		s.logger.Warn("ollama model unavailable, using lexical similarity",
			"endpoint", s.cfg.Ollama.Endpoint, "model", s.cfg.Ollama.Model)
		return embed.LexicalSimilarity{}
	}
	return embed.NewEmbeddingSimilarity(e)
}

// Markers returns the marker tables in use.
func (s *Service) Markers() *markers.Set { return s.set }

// Online reports whether any LLM-backed collaborator is configured.
func (s *Service) Online() bool {
	return s.elements != nil || s.connExt != nil || s.justifier != nil || s.finder != nil
}
