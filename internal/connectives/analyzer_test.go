package connectives

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/redacao/internal/markers"
)

func newAnalyzer() *Analyzer {
	return NewAnalyzer(markers.Default(), DefaultConfig())
}

func TestAnalyze_RepeatedPortanto(t *testing.T) {
	text := "Portanto, a leitura importa. Portanto, a escola precisa agir. Portanto, fim."
	got := newAnalyzer().Analyze(text)

	if !reflect.DeepEqual(got.Repeated, map[string]int{"portanto": 3}) {
		t.Errorf("repeated = %v, want map[portanto:3]", got.Repeated)
	}
	if got.CategoryCounts[markers.Conclusivos] != 3 {
		t.Errorf("conclusivos = %d, want 3", got.CategoryCounts[markers.Conclusivos])
	}
	if len(got.Occurrences) != 3 {
		t.Fatalf("occurrences = %d, want 3", len(got.Occurrences))
	}
	for _, o := range got.Occurrences {
		if o.Frequency != 3 {
			t.Errorf("frequency = %d, want 3", o.Frequency)
		}
		if text[o.Span.Start:o.Span.End] != "Portanto" {
			t.Errorf("span %v covers %q", o.Span, text[o.Span.Start:o.Span.End])
		}
	}

	// variety 1/7*0.5 + quantity 1/7*0.3 + repetition (0.2-0.05)
	want := 0.5/7 + 0.3/7 + 0.15
	if math.Abs(got.Score-want) > 1e-9 {
		t.Errorf("score = %f, want %f", got.Score, want)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n\n "} {
		got := newAnalyzer().Analyze(text)
		if got.Score != 0 || len(got.Occurrences) != 0 || len(got.Repeated) != 0 {
			t.Errorf("Analyze(%q) = %+v, want zero", text, got)
		}
		if len(got.CategoryCounts) != 7 {
			t.Errorf("category counts should list all 7 categories, got %d", len(got.CategoryCounts))
		}
	}
}

func TestAnalyze_WordBoundary(t *testing.T) {
	got := newAnalyzer().Analyze("Vamos mastigar devagar.")
	if got.CategoryCounts[markers.Adversativos] != 0 {
		t.Errorf("'mas' inside 'mastigar' should not count")
	}
}

func TestAnalyze_LongestPhraseWins(t *testing.T) {
	got := newAnalyzer().Analyze("A saúde, assim como a educação, é direito.")
	if got.CategoryCounts[markers.Comparativos] != 1 {
		t.Errorf("comparativos = %d, want 1", got.CategoryCounts[markers.Comparativos])
	}
	if got.CategoryCounts[markers.Conclusivos] != 0 {
		t.Errorf("nested 'assim' counted as conclusivo")
	}
}

func TestAnalyze_SpansInsideText(t *testing.T) {
	text := "ENTÃO, além disso, porém; todavia... pois sim. Em seguida, de fato, bem como."
	got := newAnalyzer().Analyze(text)
	if len(got.Occurrences) == 0 {
		t.Fatal("expected occurrences")
	}
	for _, o := range got.Occurrences {
		if o.Span.Start < 0 || o.Span.Start >= o.Span.End || o.Span.End > len(text) {
			t.Errorf("invalid span %v", o.Span)
		}
		if markers.Fold(text[o.Span.Start:o.Span.End]) != o.Text {
			t.Errorf("span %v covers %q, want %q", o.Span, text[o.Span.Start:o.Span.End], o.Text)
		}
	}
	if got.Score < 0 || got.Score > 1 {
		t.Errorf("score out of bounds: %f", got.Score)
	}
}

func TestAnalyze_DecomposedTextMatchesComposed(t *testing.T) {
	composed := "O tema é relevante, porém complexo. Além disso, há custos. Também há ganhos."
	decomposed := norm.NFD.String(composed)
	if decomposed == composed {
		t.Fatal("fixture has no decomposable runes")
	}

	a := newAnalyzer()
	want := a.Analyze(composed)
	got := a.Analyze(decomposed)

	if want.CategoryCounts[markers.Adversativos] != 1 || want.CategoryCounts[markers.Aditivos] != 2 {
		t.Fatalf("composed counts = %v", want.CategoryCounts)
	}
	if !reflect.DeepEqual(got.CategoryCounts, want.CategoryCounts) {
		t.Errorf("decomposed counts = %v, want %v", got.CategoryCounts, want.CategoryCounts)
	}
	if got.Score != want.Score {
		t.Errorf("decomposed score = %f, want %f", got.Score, want.Score)
	}
	if a.Count(decomposed) != a.Count(composed) {
		t.Errorf("Count = %d, want %d", a.Count(decomposed), a.Count(composed))
	}
	for _, o := range got.Occurrences {
		if markers.Fold(decomposed[o.Span.Start:o.Span.End]) != o.Text {
			t.Errorf("span %v covers %q, want %q", o.Span, decomposed[o.Span.Start:o.Span.End], o.Text)
		}
	}
}

func TestAnalyze_ExcellentVarietyFeedback(t *testing.T) {
	text := "Além disso, há avanços. Porém, há falhas. Portanto, agir. Pois falta. Em seguida, rever."
	got := newAnalyzer().Analyze(text)
	if got.CategoriesUsed() < 5 {
		t.Fatalf("categories used = %d", got.CategoriesUsed())
	}
	if len(got.Feedback) == 0 || !strings.HasPrefix(got.Feedback[0], "Excelente variedade") {
		t.Errorf("feedback = %v", got.Feedback)
	}
}

func TestAnalyze_MissingCategoryFeedback(t *testing.T) {
	got := newAnalyzer().Analyze("Além disso, o texto segue.")
	joined := strings.Join(got.Feedback, "\n")
	if !strings.Contains(joined, "conclusivos") || !strings.Contains(joined, "explicativos") {
		t.Errorf("feedback should ask for conclusivos and explicativos: %v", got.Feedback)
	}
}

func TestCount(t *testing.T) {
	a := newAnalyzer()
	// "mas também" is one aditivo, not "mas" plus "também".
	if got := a.Count("Porém, logo depois, mas também."); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
	if got := a.Count(""); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
}

func TestMerge_DropsOverlapsAndRecomputes(t *testing.T) {
	a := newAnalyzer()
	text := "Portanto, isso importa. Contanto que todos leiam."
	base := a.Analyze(text)

	idx := strings.Index(text, "Contanto que")
	external := []Occurrence{
		{Text: "portanto", Category: markers.Conclusivos, Span: markers.Span{Start: 0, End: 8}},
		{Text: "Contanto que", Category: markers.Explicativos, Span: markers.Span{Start: idx, End: idx + len("Contanto que")}},
		{Text: "fora", Category: markers.Aditivos, Span: markers.Span{Start: 10, End: 5000}},
		{Text: "isso", Category: "inventada", Span: markers.Span{Start: 10, End: 14}},
	}

	got := a.Merge(text, base, external)
	if len(got.Occurrences) != 2 {
		t.Fatalf("occurrences = %d, want 2: %+v", len(got.Occurrences), got.Occurrences)
	}
	if got.CategoryCounts[markers.Conclusivos] != 1 {
		t.Errorf("conclusivos = %d, want 1 (no double count)", got.CategoryCounts[markers.Conclusivos])
	}
	if got.CategoryCounts[markers.Explicativos] != 1 {
		t.Errorf("explicativos = %d, want 1", got.CategoryCounts[markers.Explicativos])
	}
	if got.Occurrences[1].Source != SourceExternal || got.Occurrences[1].Text != "contanto que" {
		t.Errorf("external occurrence = %+v", got.Occurrences[1])
	}
	if got.Score <= base.Score {
		t.Errorf("score should rise with a new category: %f <= %f", got.Score, base.Score)
	}
}

func TestMerge_NoExternal(t *testing.T) {
	a := newAnalyzer()
	base := a.Analyze("Portanto, sim.")
	got := a.Merge("Portanto, sim.", base, nil)
	if !reflect.DeepEqual(got, base) {
		t.Errorf("merge without proposals should return base")
	}
}
