package structure

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhisek/redacao/internal/markers"
)

const introParagraph = "Atualmente, a educação brasileira enfrenta desafios profundos que afetam " +
	"milhões de estudantes em todas as regiões do país; portanto, é preciso discutir " +
	"soluções concretas e duradouras."

type externalFunc func(ctx context.Context, text string, t ParagraphType) (*ElementAnalysis, error)

func (f externalFunc) ClassifyElements(ctx context.Context, text string, t ParagraphType) (*ElementAnalysis, error) {
	return f(ctx, text, t)
}

func countingExternal(calls *atomic.Int32, result *ElementAnalysis) externalFunc {
	return func(ctx context.Context, text string, t ParagraphType) (*ElementAnalysis, error) {
		calls.Add(1)
		return result, nil
	}
}

func TestAnalyzeParagraph_DeterministicOnly(t *testing.T) {
	a := NewAnalyzer(nil, DefaultAnalyzerConfig())
	got := a.AnalyzeParagraph(context.Background(), introParagraph, 0)

	if got.Type != Introduction {
		t.Errorf("type = %s, want %s", got.Type, Introduction)
	}
	if !equalStrings(got.Elements.Present, []string{"contexto", "tese"}) {
		t.Errorf("present = %v", got.Elements.Present)
	}
	if got.External {
		t.Error("no external classifier configured")
	}
	if got.Feedback != ScoreFeedback(got.Elements.Score, Introduction) {
		t.Errorf("feedback = %q", got.Feedback)
	}
	if len(got.Tips) != 4 {
		t.Errorf("tips = %v", got.Tips)
	}
}

func TestAnalyzeParagraph_AttachesConnectives(t *testing.T) {
	a := NewAnalyzer(nil, DefaultAnalyzerConfig())
	got := a.AnalyzeParagraph(context.Background(), introParagraph, 0)

	if got.Connectives == nil {
		t.Fatal("paragraph connectives missing")
	}
	if n := got.Connectives.CategoryCounts[markers.Conclusivos]; n != 1 {
		t.Errorf("conclusivos = %d, want 1", n)
	}
	if len(got.Connectives.Occurrences) != 1 || got.Connectives.Occurrences[0].Text != "portanto" {
		t.Errorf("occurrences = %+v", got.Connectives.Occurrences)
	}
	if len(got.Connectives.Feedback) == 0 {
		t.Error("expected cohesion feedback for a paragraph without explicativos")
	}

	// Served from cache, the connectives are still computed.
	again := a.AnalyzeParagraph(context.Background(), introParagraph, 0)
	if !again.Cached || again.Connectives == nil {
		t.Errorf("cached = %v, connectives = %v", again.Cached, again.Connectives)
	}
}

func TestAnalyzeParagraph_CombinesExternal(t *testing.T) {
	var calls atomic.Int32
	ext := &ElementAnalysis{
		Present:     []string{"argumentos", "inexistente"},
		Absent:      []string{},
		Score:       1,
		Suggestions: []string{"Cite um exemplo histórico", "", "Outra", "Mais uma"},
	}
	a := NewAnalyzer(nil, DefaultAnalyzerConfig(), WithExternal(countingExternal(&calls, ext)))

	got := a.AnalyzeParagraph(context.Background(), introParagraph, 0)

	if calls.Load() != 1 {
		t.Fatalf("external calls = %d, want 1", calls.Load())
	}
	if !got.External {
		t.Error("expected external contribution")
	}
	if !equalStrings(got.Elements.Present, []string{"contexto", "tese", "argumentos"}) {
		t.Errorf("present = %v", got.Elements.Present)
	}
	if len(got.Elements.Absent) != 0 {
		t.Errorf("absent = %v", got.Elements.Absent)
	}
	if math.Abs(got.Elements.Score-0.8) > 1e-9 {
		t.Errorf("score = %v, want 0.8", got.Elements.Score)
	}
	want := []string{"Fortaleça seus argumentos com exemplos concretos", "Cite um exemplo histórico", "Outra"}
	if !equalStrings(got.Elements.Suggestions, want) {
		t.Errorf("suggestions = %v, want %v", got.Elements.Suggestions, want)
	}
}

func TestAnalyzeParagraph_SkipsExternalOutsideWordWindow(t *testing.T) {
	var calls atomic.Int32
	a := NewAnalyzer(nil, DefaultAnalyzerConfig(),
		WithExternal(countingExternal(&calls, &ElementAnalysis{Score: 1})))

	a.AnalyzeParagraph(context.Background(), "Atualmente, portanto.", 0)
	a.AnalyzeParagraph(context.Background(), strings.Repeat("palavra ", 301), 1)

	if calls.Load() != 0 {
		t.Errorf("external calls = %d, want 0", calls.Load())
	}
}

func TestAnalyzeParagraph_ExternalTimeout(t *testing.T) {
	cfg := DefaultAnalyzerConfig()
	cfg.Timeout = 20 * time.Millisecond

	slow := externalFunc(func(ctx context.Context, text string, t ParagraphType) (*ElementAnalysis, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	a := NewAnalyzer(nil, cfg, WithExternal(slow))

	start := time.Now()
	got := a.AnalyzeParagraph(context.Background(), introParagraph, 0)

	if time.Since(start) > 2*time.Second {
		t.Errorf("analysis took %v", time.Since(start))
	}
	if got.External {
		t.Error("timed-out external must not contribute")
	}
	if !equalStrings(got.Elements.Present, []string{"contexto", "tese"}) {
		t.Errorf("present = %v", got.Elements.Present)
	}
}

func TestAnalyzeParagraph_ExternalErrorNotCached(t *testing.T) {
	var calls atomic.Int32
	failing := externalFunc(func(ctx context.Context, text string, t ParagraphType) (*ElementAnalysis, error) {
		calls.Add(1)
		return nil, errors.New("unavailable")
	})
	a := NewAnalyzer(nil, DefaultAnalyzerConfig(), WithExternal(failing))

	first := a.AnalyzeParagraph(context.Background(), introParagraph, 0)
	second := a.AnalyzeParagraph(context.Background(), introParagraph, 0)

	if first.External || second.External {
		t.Error("failed external must not contribute")
	}
	if second.Cached {
		t.Error("degraded result should not be cached")
	}
	if calls.Load() != 2 {
		t.Errorf("external calls = %d, want 2", calls.Load())
	}
}

func TestAnalyzeParagraph_UsesCache(t *testing.T) {
	var calls atomic.Int32
	ext := &ElementAnalysis{Present: []string{"argumentos"}, Score: 1}
	a := NewAnalyzer(nil, DefaultAnalyzerConfig(), WithExternal(countingExternal(&calls, ext)))

	first := a.AnalyzeParagraph(context.Background(), introParagraph, 0)
	second := a.AnalyzeParagraph(context.Background(), introParagraph, 0)

	if first.Cached || !second.Cached {
		t.Errorf("cached flags = %v, %v", first.Cached, second.Cached)
	}
	if calls.Load() != 1 {
		t.Errorf("external calls = %d, want 1", calls.Load())
	}
	if !equalStrings(first.Elements.Present, second.Elements.Present) {
		t.Errorf("cached present %v != %v", second.Elements.Present, first.Elements.Present)
	}
}

func TestAnalyzeEssay_BoundsExternalConcurrency(t *testing.T) {
	cfg := DefaultAnalyzerConfig()
	cfg.Workers = 2

	var mu sync.Mutex
	var active, peak int
	ext := externalFunc(func(ctx context.Context, text string, t ParagraphType) (*ElementAnalysis, error) {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
		return &ElementAnalysis{Score: 0.5}, nil
	})
	a := NewAnalyzer(nil, cfg, WithExternal(ext))

	var paragraphs []string
	for i := 0; i < 6; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("%s Parágrafo %d.", introParagraph, i))
	}
	results := a.AnalyzeEssay(context.Background(), strings.Join(paragraphs, "\n\n"))

	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	for i, r := range results {
		if r.Position != i {
			t.Errorf("result %d has position %d", i, r.Position)
		}
		if !r.External {
			t.Errorf("result %d missing external contribution", i)
		}
	}
	if peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
}

func TestAnalyzeEssay_FourParagraphs(t *testing.T) {
	essay := strings.Join([]string{
		introParagraph,
		"Em primeiro plano, a falta de investimento compromete o ensino, visto que faltam professores.",
		"Além disso, segundo dados do IBGE, a evasão escolar cresce a cada ano.",
		"Portanto, o governo deve criar programas por meio de parcerias a fim de garantir o acesso.",
	}, "\n\n")

	a := NewAnalyzer(markers.Default(), DefaultAnalyzerConfig())
	results := a.AnalyzeEssay(context.Background(), essay)

	want := []ParagraphType{Introduction, Development1, Development2, Conclusion}
	if len(results) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r.Type != want[i] {
			t.Errorf("paragraph %d: got %s, want %s", i, r.Type, want[i])
		}
	}

	present := toSet(results[0].Elements.Present)
	if !present["contexto"] || !present["tese"] {
		t.Errorf("introduction present = %v, want contexto and tese", results[0].Elements.Present)
	}
	if results[3].Elements.Score != 1 {
		t.Errorf("conclusion score = %v, want 1 (absent %v)", results[3].Elements.Score, results[3].Elements.Absent)
	}
}

func TestAnalyzeEssay_Empty(t *testing.T) {
	a := NewAnalyzer(nil, DefaultAnalyzerConfig())
	if got := a.AnalyzeEssay(context.Background(), "  \n\n "); len(got) != 0 {
		t.Errorf("got %d paragraphs, want 0", len(got))
	}
}
