package textmetrics

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/redacao/internal/connectives"
	"github.com/abhisek/redacao/internal/markers"
	"github.com/abhisek/redacao/internal/nlp"
)

type stubParser struct {
	doc   *nlp.Doc
	err   error
	panic bool
}

func (p stubParser) Name() string { return "stub" }

func (p stubParser) Parse(context.Context, string) (*nlp.Doc, error) {
	if p.panic {
		panic("model crashed")
	}
	return p.doc, p.err
}

type stubSimilarity struct {
	value float64
	err   error
}

func (s stubSimilarity) Name() string { return "stub" }

func (s stubSimilarity) Similarity(context.Context, string, string) (float64, error) {
	return s.value, s.err
}

func feats(kv ...string) map[string]string {
	m := make(map[string]string)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func sampleDoc() *nlp.Doc {
	return &nlp.Doc{Sentences: []nlp.Sentence{
		{Text: "Ele gosta do livro.", Tokens: []nlp.Token{
			{Text: "Ele", POS: nlp.PosPron, Head: 2, DepRel: "nsubj"},
			{Text: "gosta", POS: nlp.PosVerb, Feats: feats("Tense", "Pres"), Head: 0, DepRel: "root"},
			{Text: "de", POS: nlp.PosAdp, Head: 5, DepRel: "case"},
			{Text: "o", POS: nlp.PosDet, Feats: feats("PronType", "Art"), Head: 5, DepRel: "det"},
			{Text: "livro", POS: nlp.PosNoun, Head: 2, DepRel: "obj"},
			{Text: ".", POS: nlp.PosPunct, Head: 2, DepRel: "punct"},
		}},
		{Text: "Este livro é bom.", Tokens: []nlp.Token{
			{Text: "Este", POS: nlp.PosDet, Feats: feats("PronType", "Dem"), Head: 2, DepRel: "det"},
			{Text: "livro", POS: nlp.PosNoun, Head: 4, DepRel: "nsubj"},
			{Text: "é", POS: nlp.PosAux, Head: 4, DepRel: "cop"},
			{Text: "bom", POS: nlp.PosAdj, Head: 0, DepRel: "root"},
			{Text: ".", POS: nlp.PosPunct, Head: 4, DepRel: "punct"},
		}},
	}}
}

func TestAnalyze_FromParsedDoc(t *testing.T) {
	e := NewEngine(stubParser{doc: sampleDoc()}, stubSimilarity{value: 0.5}, nil, nil)
	m := e.Analyze(context.Background(), "Ele gosta do livro. Este livro é bom.")

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"words", float64(m.WordCount), 9},
		{"sentences", float64(m.SentenceCount), 2},
		{"paragraphs", float64(m.ParagraphCount), 1},
		{"unique", float64(m.UniqueWords), 8},
		{"diversity", m.LexicalDiversity, 88.89},
		{"density", m.LexicalDensity, 44.44},
		{"words/sentence", m.WordsPerSentence, 4.5},
		{"sentences/paragraph", m.SentencesPerParagraph, 2},
		{"avg word length", m.AverageWordLength, 3.22},
		{"nouns", float64(m.Nouns), 2},
		{"verbs", float64(m.Verbs), 1},
		{"adjectives", float64(m.Adjectives), 1},
		{"function words", float64(m.FunctionWords), 4},
		{"present tense", float64(m.PresentTense), 1},
		{"noun phrases", float64(m.NounPhrases), 3},
		{"verb phrases", float64(m.VerbPhrases), 1},
		{"syntactic complexity", m.SyntacticComplexity, 1.09},
		{"reference cohesion", m.ReferenceCohesion, 1},
		{"sentence similarity", m.SentenceSimilarity, 0.5},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if m.Degraded {
		t.Error("parsed metrics should not be degraded")
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	set := markers.Default()
	e := NewEngine(nil, nil, connectives.NewAnalyzer(set, connectives.DefaultConfig()), nil)
	text := "Atualmente, a educação é essencial. Portanto, o governo deve agir.\n\nAlém disso, a sociedade precisa participar."

	first := e.Analyze(context.Background(), text)
	second := e.Analyze(context.Background(), text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
	if first.ParagraphCount != 2 || first.SentenceCount != 3 {
		t.Errorf("paragraphs=%d sentences=%d", first.ParagraphCount, first.SentenceCount)
	}
	if first.Connectives != 2 {
		t.Errorf("connectives = %d, want 2", first.Connectives)
	}
}

func TestAnalyze_DegenerateInput(t *testing.T) {
	e := NewEngine(nil, nil, nil, nil)
	for _, text := range []string{"", "   ", "\n\n\t"} {
		m := e.Analyze(context.Background(), text)
		if !reflect.DeepEqual(m, Metrics{}) {
			t.Errorf("Analyze(%q) = %+v, want zero metrics", text, m)
		}
		if len(m.Map()) != 25 {
			t.Errorf("Map() should always list every metric, got %d", len(m.Map()))
		}
	}
}

func TestAnalyze_ParserErrorUsesNaive(t *testing.T) {
	e := NewEngine(stubParser{err: errors.New("model not loaded")}, nil, nil, nil)
	m := e.Analyze(context.Background(), "Um dois três. Quatro cinco.\n\nSeis.")

	if !m.Degraded {
		t.Error("expected degraded metrics")
	}
	if m.WordCount != 6 || m.SentenceCount != 3 || m.ParagraphCount != 2 {
		t.Errorf("words=%d sentences=%d paragraphs=%d", m.WordCount, m.SentenceCount, m.ParagraphCount)
	}
	if m.UniqueWords != 6 {
		t.Errorf("unique = %d, want 6", m.UniqueWords)
	}
}

func TestAnalyze_PanicUsesNaive(t *testing.T) {
	e := NewEngine(stubParser{panic: true}, nil, nil, nil)
	m := e.Analyze(context.Background(), "Texto curto.")
	if !m.Degraded || m.WordCount != 2 {
		t.Errorf("got %+v", m)
	}
}

func TestAnalyze_SimilarityFailureFallsBackToLexical(t *testing.T) {
	e := NewEngine(stubParser{doc: sampleDoc()}, stubSimilarity{err: errors.New("ollama down")}, nil, nil)
	m := e.Analyze(context.Background(), "Ele gosta do livro. Este livro é bom.")
	if m.Similarity != "lexical" {
		t.Errorf("similarity = %q, want lexical", m.Similarity)
	}
	if m.SentenceSimilarity <= 0 || m.SentenceSimilarity > 1 {
		t.Errorf("sentence similarity = %f", m.SentenceSimilarity)
	}
}

func TestAnalyze_SingleSentenceSimilarityZero(t *testing.T) {
	doc := &nlp.Doc{Sentences: sampleDoc().Sentences[:1]}
	e := NewEngine(stubParser{doc: doc}, stubSimilarity{value: 0.9}, nil, nil)
	m := e.Analyze(context.Background(), "Ele gosta do livro.")
	if m.SentenceSimilarity != 0 {
		t.Errorf("got %f, want 0", m.SentenceSimilarity)
	}
}

func TestAnalyze_ReportsServingParser(t *testing.T) {
	primary := stubParser{err: errors.New("udpipe down")}
	e := NewEngine(nlp.WithFallback(primary, nlp.NewRuleParser(), nil), nil, nil, nil)

	m := e.Analyze(context.Background(), "O governo deve agir. A sociedade também.")
	if m.Parser != "rules" {
		t.Errorf("Parser = %q, want %q", m.Parser, "rules")
	}
	if m.SentenceCount != 2 {
		t.Errorf("SentenceCount = %d, want 2", m.SentenceCount)
	}
}

func TestAnalyze_PunctuationOnly(t *testing.T) {
	e := NewEngine(nlp.NewRuleParser(), nil, nil, nil)

	m := e.Analyze(context.Background(), "...")
	if m.SentenceCount != 0 || m.WordCount != 0 {
		t.Errorf("counts = %d sentences, %d words, want 0, 0", m.SentenceCount, m.WordCount)
	}
	if m.SyntacticComplexity != 0 {
		t.Errorf("SyntacticComplexity = %v, want 0", m.SyntacticComplexity)
	}
}
