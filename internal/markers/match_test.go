package markers

import (
	"reflect"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestFold(t *testing.T) {
	if got := Fold("ATUALMENTE, É Preciso"); got != "atualmente, é preciso" {
		t.Errorf("got %q", got)
	}
}

func TestFoldMapped_OffsetsPointIntoSource(t *testing.T) {
	src := "Então ÉTICA"
	folded, offsets := FoldMapped(src)

	if folded != "então ética" {
		t.Fatalf("folded = %q", folded)
	}
	if len(offsets) != len(folded)+1 {
		t.Fatalf("offsets len = %d, want %d", len(offsets), len(folded)+1)
	}
	if offsets[len(folded)] != len(src) {
		t.Errorf("end offset = %d, want %d", offsets[len(folded)], len(src))
	}
}

func TestFoldMapped_ComposesDecomposedText(t *testing.T) {
	src := norm.NFD.String("Porém, ALÉM disso")
	folded, offsets := FoldMapped(src)

	if folded != Fold(src) {
		t.Fatalf("folded = %q, want %q", folded, Fold(src))
	}
	if len(offsets) != len(folded)+1 || offsets[len(folded)] != len(src) {
		t.Fatalf("offsets len = %d, end = %d", len(offsets), offsets[len(offsets)-1])
	}

	spans := NewMatcher(WordBoundary).FindAll(folded, "além disso")
	if len(spans) != 1 {
		t.Fatalf("got %d matches, want 1", len(spans))
	}
	got := src[offsets[spans[0].Start]:offsets[spans[0].End]]
	if got != norm.NFD.String("ALÉM disso") {
		t.Errorf("source slice = %q", got)
	}
}

func TestMatcher_SubstringMatchesInsideWords(t *testing.T) {
	m := NewMatcher(Substring)
	if !m.Contains("vamos mastigar", "mas") {
		t.Error("substring matcher should match inside a word")
	}
}

func TestMatcher_WordBoundary(t *testing.T) {
	m := NewMatcher(WordBoundary)

	tests := []struct {
		text   string
		phrase string
		want   bool
	}{
		{"vamos mastigar", "mas", false},
		{"tentou, mas falhou", "mas", true},
		{"mas.", "mas", true},
		{"é preciso agir", "é preciso", true},
		{"logotipo novo", "logo", false},
		{"logo depois", "logo", true},
	}
	for _, tt := range tests {
		if got := m.Contains(tt.text, tt.phrase); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.text, tt.phrase, got, tt.want)
		}
	}
}

func TestMatcher_FindAll(t *testing.T) {
	m := NewMatcher(WordBoundary)
	got := m.FindAll("portanto a; portanto b; aportanto; portanto", "portanto")
	want := []Span{{0, 8}, {12, 20}, {35, 43}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMatcher_EmptyPhrase(t *testing.T) {
	m := NewMatcher(Substring)
	if m.Contains("texto", "") {
		t.Error("empty phrase should never match")
	}
	if m.FindAll("texto", "") != nil {
		t.Error("empty phrase should yield no spans")
	}
}

func TestParseStrictness(t *testing.T) {
	if s, err := ParseStrictness("word"); err != nil || s != WordBoundary {
		t.Errorf("got %v, %v", s, err)
	}
	if s, err := ParseStrictness(""); err != nil || s != Substring {
		t.Errorf("got %v, %v", s, err)
	}
	if _, err := ParseStrictness("fuzzy"); err == nil {
		t.Error("expected error")
	}
}

func TestSpan_Overlaps(t *testing.T) {
	a := Span{0, 5}
	if !a.Overlaps(Span{4, 8}) {
		t.Error("expected overlap")
	}
	if a.Overlaps(Span{5, 8}) {
		t.Error("adjacent spans do not overlap")
	}
	if !a.Contains(Span{1, 3}) {
		t.Error("expected containment")
	}
}
