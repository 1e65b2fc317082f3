package textmetrics

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/embed"
	"github.com/abhisek/redacao/internal/logging"
	"github.com/abhisek/redacao/internal/nlp"
)

// ConnectiveCounter counts connective occurrences in text.
type ConnectiveCounter interface {
	Count(text string) int
}

// Engine computes Metrics. It is safe for concurrent use when its
// collaborators are.
type Engine struct {
	parser      nlp.Parser
	similarity  embed.Similarity
	connectives ConnectiveCounter
	logger      *log.Logger
}

// NewEngine creates an Engine. A nil parser uses the rule-based parser and a
// nil similarity uses the lexical cosine.
func NewEngine(parser nlp.Parser, sim embed.Similarity, counter ConnectiveCounter, logger *log.Logger) *Engine {
	if parser == nil {
		parser = nlp.NewRuleParser()
	}
	if sim == nil {
		sim = embed.LexicalSimilarity{}
	}
	return &Engine{
		parser:      parser,
		similarity:  sim,
		connectives: counter,
		logger:      logging.OrDiscard(logger),
	}
}

// Analyze computes the metrics of text. It never fails: blank text yields
// zero metrics, and any parser failure or panic yields the naive metrics.
func (e *Engine) Analyze(ctx context.Context, text string) (m Metrics) {
	if strings.TrimSpace(text) == "" {
		return Metrics{}
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("metrics computation panicked, using naive metrics", "panic", r)
			m = e.naive(text)
		}
	}()

	doc, err := e.parser.Parse(ctx, text)
	if err != nil || doc == nil {
		e.logger.Warn("parser failed, using naive metrics", "parser", e.parser.Name(), "err", err)
		return e.naive(text)
	}

	return e.fromDoc(ctx, text, doc)
}

func (e *Engine) fromDoc(ctx context.Context, text string, doc *nlp.Doc) Metrics {
	m := Metrics{Parser: doc.Parser}
	if m.Parser == "" {
		m.Parser = e.parser.Name()
	}

	words := doc.Words()
	m.WordCount = len(words)
	m.SentenceCount = len(doc.Sentences)
	m.ParagraphCount = len(nlp.SplitParagraphs(text))

	unique := make(map[string]struct{}, len(words))
	runes := 0
	for _, w := range words {
		unique[w.Lower()] = struct{}{}
		runes += utf8.RuneCountInString(w.Text)

		switch w.POS {
		case nlp.PosNoun:
			m.Nouns++
		case nlp.PosVerb:
			m.Verbs++
			switch w.Feat("Tense") {
			case "Pres":
				m.PresentTense++
			case "Past", "Imp":
				m.PastTense++
			case "Fut":
				m.FutureTense++
			}
		case nlp.PosAdj:
			m.Adjectives++
		case nlp.PosAdv:
			m.Adverbs++
		}
		switch w.POS {
		case nlp.PosNoun, nlp.PosVerb, nlp.PosAdj, nlp.PosAdv:
			m.ContentWords++
		case nlp.PosAdp, nlp.PosDet, nlp.PosPron:
			m.FunctionWords++
		}
	}
	m.UniqueWords = len(unique)

	n := float64(m.WordCount)
	m.LexicalDiversity = ratio(float64(m.UniqueWords)*100, n)
	m.LexicalDensity = ratio(float64(m.ContentWords)*100, n)
	m.WordsPerSentence = ratio(n, float64(m.SentenceCount))
	m.SentencesPerParagraph = ratio(float64(m.SentenceCount), float64(m.ParagraphCount))
	m.AverageWordLength = ratio(float64(runes), n)

	var depthSum, tokenCount, references int
	for _, s := range doc.Sentences {
		m.NounPhrases += s.NounChunks()
		if s.IsComplex() {
			m.ComplexSentences++
		}
		for i, t := range s.Tokens {
			depthSum += s.Depth(i)
			tokenCount++

			if t.POS == nlp.PosPron || (t.POS == nlp.PosDet && t.Feat("PronType") == "Dem") {
				references++
			}
			if t.POS == nlp.PosVerb && hasCoreArgument(s, i) {
				m.VerbPhrases++
			}
		}
	}
	m.SyntacticComplexity = ratio(float64(depthSum), float64(tokenCount))
	m.ReferenceCohesion = ratio(float64(references), float64(m.SentenceCount))

	if e.connectives != nil {
		m.Connectives = e.connectives.Count(text)
	}

	m.SentenceSimilarity, m.Similarity = e.adjacentSimilarity(ctx, doc)
	return m
}

func hasCoreArgument(s nlp.Sentence, i int) bool {
	for _, c := range s.Children(i) {
		switch s.Tokens[c].DepRel {
		case "nsubj", "obj", "nsubj:pass":
			return true
		}
	}
	return false
}

// adjacentSimilarity averages the similarity of consecutive sentences. If the
// configured collaborator fails, the whole computation is redone lexically.
func (e *Engine) adjacentSimilarity(ctx context.Context, doc *nlp.Doc) (float64, string) {
	if len(doc.Sentences) < 2 {
		return 0, e.similarity.Name()
	}

	score, err := meanAdjacent(ctx, e.similarity, doc)
	if err == nil {
		return score, e.similarity.Name()
	}

	e.logger.Warn("sentence similarity unavailable, using lexical cosine",
		"similarity", e.similarity.Name(), "err", err)
	lex := embed.LexicalSimilarity{}
	score, _ = meanAdjacent(ctx, lex, doc)
	return score, lex.Name()
}

func meanAdjacent(ctx context.Context, sim embed.Similarity, doc *nlp.Doc) (float64, error) {
	var sum float64
	pairs := len(doc.Sentences) - 1
	for i := range pairs {
		v, err := sim.Similarity(ctx, doc.Sentences[i].Text, doc.Sentences[i+1].Text)
		if err != nil {
			return 0, fmt.Errorf("sentences %d/%d: %w", i, i+1, err)
		}
		sum += v
	}
	return round2(sum / float64(pairs)), nil
}

// naive derives what it can from whitespace, period and blank-line splits.
func (e *Engine) naive(text string) Metrics {
	words := nlp.NaiveWords(text)
	sentences := nlp.NaiveSentences(text)
	paragraphs := nlp.SplitParagraphs(text)

	unique := make(map[string]struct{}, len(words))
	runes := 0
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
		runes += utf8.RuneCountInString(w)
	}

	m := Metrics{
		WordCount:      len(words),
		SentenceCount:  len(sentences),
		ParagraphCount: len(paragraphs),
		UniqueWords:    len(unique),
		Degraded:       true,
		Parser:         "naive",
	}
	n := float64(m.WordCount)
	m.LexicalDiversity = ratio(float64(m.UniqueWords)*100, n)
	m.WordsPerSentence = ratio(n, float64(m.SentenceCount))
	m.SentencesPerParagraph = ratio(float64(m.SentenceCount), float64(m.ParagraphCount))
	m.AverageWordLength = ratio(float64(runes), n)

	if e.connectives != nil {
		m.Connectives = e.safeCount(text)
	}
	return m
}

func (e *Engine) safeCount(text string) (n int) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
		}
	}()
	return e.connectives.Count(text)
}
