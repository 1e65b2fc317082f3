package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/redacao/internal/grading"
	"github.com/abhisek/redacao/internal/markers"
	"github.com/abhisek/redacao/internal/scoring"
	"github.com/abhisek/redacao/internal/store"
)

const essay = "Atualmente, a educação brasileira enfrenta desafios profundos que afetam " +
	"milhões de estudantes em todas as regiões do país; portanto, é preciso discutir " +
	"soluções concretas e duradouras.\n\n" +
	"Em primeiro plano, a falta de investimento compromete o ensino, visto que faltam professores.\n\n" +
	"Além disso, segundo dados do IBGE, a evasão escolar cresce a cada ano.\n\n" +
	"Portanto, o governo deve criar programas por meio de parcerias a fim de garantir o acesso."

func plain() *Renderer {
	return New(Options{Width: 80, Plain: true})
}

func gradeFixture(t *testing.T) *grading.EssayGrade {
	t.Helper()
	svc, err := grading.NewService(grading.DefaultConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	g, err := svc.GradeEssay(context.Background(), grading.Request{
		Essay: essay,
		Theme: "Desafios da educação",
		Errors: map[grading.CompetencyID][]scoring.GradedError{
			grading.Comp1: {
				{Excerpt: "fazem dois anos", Explanation: "Erro de concordância verbal.", Suggestion: "faz dois anos"},
				{Excerpt: "a nível de", Explanation: "A frase poderia ser mais elegante."},
			},
		},
	})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	return g
}

func TestAnalysis_Plain(t *testing.T) {
	g := gradeFixture(t)
	out := plain().Analysis(g.Analysis)

	for _, want := range []string{
		"Métricas",
		"Word Count",
		"§1 Introdução",
		"§4 Conclusão",
		"✓ ",
		"contexto",
		"Conectivos",
		"portanto ×2",
		"conectivos: conclusivos 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains escape sequences")
	}
}

func TestAnalysis_Empty(t *testing.T) {
	svc, err := grading.NewService(grading.DefaultConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	out := plain().Analysis(svc.AnalyzeEssay(context.Background(), ""))
	if !strings.Contains(out, "Nenhum parágrafo encontrado.") {
		t.Errorf("output:\n%s", out)
	}
}

func TestGrade_Plain(t *testing.T) {
	g := gradeFixture(t)
	out := plain().Grade(g)

	for _, want := range []string{
		"Nota final: 1000 / 1000",
		"(offline)",
		"Tema: Desafios da educação",
		"Competência 1 - Domínio da norma culta",
		"200 / 200",
		"1 erros (informados)",
		"concordancia 1",
		`"fazem dois anos" Erro de concordância verbal.`,
		"→ faz dois anos",
		"1 sugestões de estilo não contadas",
		"Competência 5 - Proposta de intervenção",
		"sem lista",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	c1 := strings.Index(out, "Competência 1")
	c5 := strings.Index(out, "Competência 5")
	if c1 < 0 || c5 < c1 {
		t.Errorf("competencies out of order")
	}
}

func TestGrade_ProposalDetail(t *testing.T) {
	proposed := 200
	g := &grading.EssayGrade{
		RunID: "abc",
		Competencies: map[grading.CompetencyID]grading.CompetencyResult{
			grading.Comp2: {
				ID:   grading.Comp2,
				Name: "Competência 2 - Compreensão do tema",
				CompetencyGrade: scoring.CompetencyGrade{
					Band: 80, BaseBand: 80, Proposed: &proposed, Adjusted: true,
					Justification: "Tangencia o tema.",
				},
				ErrorSource: "external",
			},
		},
		Total: 80,
	}
	out := plain().Grade(g)
	for _, want := range []string{"base 80, proposta 200 (ajustada)", "identificados automaticamente", "Tangencia o tema."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBar(t *testing.T) {
	r := plain()
	tests := []struct {
		fraction     float64
		filled, rest int
	}{
		{0, 0, 20},
		{0.5, 10, 10},
		{1, 20, 0},
		{1.7, 20, 0},
		{-1, 0, 20},
	}
	for _, tt := range tests {
		got := r.bar("", tt.fraction, "", 22)
		if n := strings.Count(got, barFilled); n != tt.filled {
			t.Errorf("bar(%v) filled = %d, want %d", tt.fraction, n, tt.filled)
		}
		if n := strings.Count(got, barEmpty); n != tt.rest {
			t.Errorf("bar(%v) empty = %d, want %d", tt.fraction, n, tt.rest)
		}
	}
}

func TestOrderedCategories(t *testing.T) {
	got := orderedCategories(map[markers.Category]int{
		"zeta":              1,
		markers.Enfaticos:   0,
		markers.Aditivos:    2,
		"alfa":              0,
		markers.Conclusivos: 1,
	})
	want := []markers.Category{markers.Aditivos, markers.Conclusivos, markers.Enfaticos, "alfa", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestUsedCategories(t *testing.T) {
	got := usedCategories(map[markers.Category]int{
		markers.Explicativos: 1,
		markers.Aditivos:     2,
		markers.Enfaticos:    0,
	})
	if got != "aditivos 2, explicativos 1" {
		t.Errorf("got %q", got)
	}
	if got := usedCategories(nil); got != "nenhum" {
		t.Errorf("empty = %q, want nenhum", got)
	}
}

func TestRuns(t *testing.T) {
	r := plain()
	if got := r.Runs(nil); got != "Nenhuma correção registrada.\n" {
		t.Errorf("empty runs = %q", got)
	}

	out := r.Runs([]store.Run{
		{RunID: "0123456789abcdef", Timestamp: time.Now(), Total: 880, Offline: true, Theme: "educação"},
		{RunID: "short", Timestamp: time.Now(), Total: 1000, Theme: "saúde"},
	})
	for _, want := range []string{"01234567 ", "880", "offline", "educação", "1000", "online", "saúde"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789") {
		t.Error("run id not shortened")
	}
}

func TestWriteJSON(t *testing.T) {
	g := gradeFixture(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, g); err != nil {
		t.Fatalf("write: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["total"] != float64(g.Total) {
		t.Errorf("total = %v, want %d", decoded["total"], g.Total)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("output not indented")
	}
}
