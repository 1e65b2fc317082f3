// Package report renders analyses and grades for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/abhisek/redacao/internal/connectives"
	"github.com/abhisek/redacao/internal/grading"
	"github.com/abhisek/redacao/internal/markers"
	"github.com/abhisek/redacao/internal/scoring"
	"github.com/abhisek/redacao/internal/store"
	"github.com/abhisek/redacao/internal/structure"
	"github.com/abhisek/redacao/internal/textmetrics"
)

// Options configures a Renderer.
type Options struct {
	Width int
	// Plain drops colors and borders.
	Plain bool
}

// DefaultOptions returns colored output 80 cells wide.
func DefaultOptions() Options {
	return Options{Width: 80}
}

// Renderer turns results into text.
type Renderer struct {
	width int
	plain bool
	st    styles
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	r := &Renderer{width: opts.Width, plain: opts.Plain, st: colorStyles()}
	if r.width < 40 {
		r.width = 40
	}
	if opts.Plain {
		r.st = plainStyles()
	}
	return r
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type metricGroup struct {
	title string
	keys  []string
}

var metricGroups = []metricGroup{
	{"Volume", []string{
		textmetrics.KeyWordCount, textmetrics.KeySentenceCount,
		textmetrics.KeyParagraphCount, textmetrics.KeyUniqueWords,
	}},
	{"Legibilidade", []string{
		textmetrics.KeyWordsPerSentence, textmetrics.KeySentencesPerParagraph,
		textmetrics.KeyAverageWordLength, textmetrics.KeyLexicalDiversity,
		textmetrics.KeyLexicalDensity,
	}},
	{"Sintaxe", []string{
		textmetrics.KeyComplexSentences, textmetrics.KeySyntacticComplexity,
		textmetrics.KeyNounPhrases, textmetrics.KeyVerbPhrases,
	}},
	{"Coesão", []string{
		textmetrics.KeyConnectives, textmetrics.KeyReferenceCohesion,
		textmetrics.KeySentenceSimilarity,
	}},
	{"Classes de palavras", []string{
		textmetrics.KeyNouns, textmetrics.KeyVerbs, textmetrics.KeyAdjectives,
		textmetrics.KeyAdverbs, textmetrics.KeyContentWords, textmetrics.KeyFunctionWords,
		textmetrics.KeyPresentTense, textmetrics.KeyPastTense, textmetrics.KeyFutureTense,
	}},
}

var paragraphLabels = map[structure.ParagraphType]string{
	structure.Introduction: "Introdução",
	structure.Development1: "Desenvolvimento 1",
	structure.Development2: "Desenvolvimento 2",
	structure.Conclusion:   "Conclusão",
}

var categoryOrder = []markers.Category{
	markers.Aditivos, markers.Adversativos, markers.Conclusivos, markers.Explicativos,
	markers.Sequenciais, markers.Comparativos, markers.Enfaticos,
}

// Analysis renders metrics, paragraph structure and connectives.
func (r *Renderer) Analysis(a grading.Analysis) string {
	var b strings.Builder
	b.WriteString(r.st.Title.Render("Análise da redação"))
	b.WriteString("\n\n")
	r.writeMetrics(&b, a.Metrics)
	b.WriteString("\n")
	r.writeParagraphs(&b, a.Paragraphs)
	b.WriteString("\n")
	r.writeConnectives(&b, a.Connectives)
	return b.String()
}

func (r *Renderer) writeMetrics(b *strings.Builder, m textmetrics.Metrics) {
	b.WriteString(r.st.Heading.Render("Métricas"))
	if m.Degraded {
		b.WriteString("  " + r.st.Warn.Render("(contagem simplificada)"))
	}
	b.WriteString("\n")

	values := m.Map()
	for _, g := range metricGroups {
		b.WriteString("  " + r.st.Label.Render(g.title) + "\n")
		for _, k := range g.keys {
			fmt.Fprintf(b, "    %-26s %s\n", k, r.st.Value.Render(formatMetric(values[k])))
		}
	}
	if m.Parser != "" || m.Similarity != "" {
		b.WriteString(r.st.Dim.Render(fmt.Sprintf("  parser: %s, similaridade: %s", m.Parser, m.Similarity)))
		b.WriteString("\n")
	}
}

func formatMetric(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func (r *Renderer) writeParagraphs(b *strings.Builder, paragraphs []structure.ParagraphAnalysis) {
	b.WriteString(r.st.Heading.Render("Estrutura"))
	b.WriteString("\n")
	if len(paragraphs) == 0 {
		b.WriteString(r.st.Dim.Render("  Nenhum parágrafo encontrado."))
		b.WriteString("\n")
		return
	}

	for _, p := range paragraphs {
		var card strings.Builder
		title := fmt.Sprintf("§%d %s (%d palavras)", p.Position+1, paragraphLabel(p.Type), p.WordCount)
		card.WriteString(r.st.Value.Render(title))
		if p.External {
			card.WriteString(" " + r.st.Dim.Render("[externo]"))
		}
		if p.Cached {
			card.WriteString(" " + r.st.Dim.Render("[cache]"))
		}
		card.WriteString("\n")
		card.WriteString(r.bar("elementos", p.Elements.Score, percent(p.Elements.Score), r.width-6))
		card.WriteString("\n")
		if len(p.Elements.Present) > 0 {
			card.WriteString(r.st.Good.Render("✓ " + strings.Join(p.Elements.Present, ", ")))
			card.WriteString("\n")
		}
		if len(p.Elements.Absent) > 0 {
			card.WriteString(r.st.Bad.Render("✗ " + strings.Join(p.Elements.Absent, ", ")))
			card.WriteString("\n")
		}
		if p.Feedback != "" {
			card.WriteString(p.Feedback + "\n")
		}
		for _, s := range p.Elements.Suggestions {
			card.WriteString(r.st.Warn.Render("→ "+s) + "\n")
		}
		for _, t := range p.Tips {
			card.WriteString(r.st.Dim.Render("· "+t) + "\n")
		}
		if p.Connectives != nil {
			card.WriteString(r.st.Dim.Render("conectivos: "+usedCategories(p.Connectives.CategoryCounts)) + "\n")
		}
		b.WriteString(r.card(strings.TrimRight(card.String(), "\n")))
		b.WriteString("\n")
	}
}

func usedCategories(counts map[markers.Category]int) string {
	var parts []string
	for _, cat := range orderedCategories(counts) {
		if n := counts[cat]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", cat, n))
		}
	}
	if len(parts) == 0 {
		return "nenhum"
	}
	return strings.Join(parts, ", ")
}

func paragraphLabel(t structure.ParagraphType) string {
	if l, ok := paragraphLabels[t]; ok {
		return l
	}
	return string(t)
}

func (r *Renderer) card(body string) string {
	if r.plain {
		return indent(body, "  ")
	}
	return r.st.Card.Width(r.width - 2).Render(body)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) writeConnectives(b *strings.Builder, c connectives.Analysis) {
	b.WriteString(r.st.Heading.Render("Conectivos"))
	b.WriteString("\n")
	b.WriteString("  " + r.bar("variedade", c.Score, percent(c.Score), r.width-2))
	b.WriteString("\n")

	for _, cat := range orderedCategories(c.CategoryCounts) {
		n := c.CategoryCounts[cat]
		line := fmt.Sprintf("    %-14s %d", cat, n)
		if n == 0 {
			line = r.st.Dim.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if len(c.Repeated) > 0 {
		phrases := make([]string, 0, len(c.Repeated))
		for p := range c.Repeated {
			phrases = append(phrases, p)
		}
		slices.Sort(phrases)
		parts := make([]string, len(phrases))
		for i, p := range phrases {
			parts[i] = fmt.Sprintf("%s ×%d", p, c.Repeated[p])
		}
		b.WriteString("  " + r.st.Warn.Render("Repetidos: "+strings.Join(parts, ", ")) + "\n")
	}
	for _, f := range c.Feedback {
		b.WriteString("  · " + f + "\n")
	}
}

// orderedCategories lists the built-in categories first, then any extra ones
// from a custom marker file in name order.
func orderedCategories(counts map[markers.Category]int) []markers.Category {
	out := make([]markers.Category, 0, len(counts))
	for _, c := range categoryOrder {
		if _, ok := counts[c]; ok {
			out = append(out, c)
		}
	}
	var extra []markers.Category
	for c := range counts {
		if !slices.Contains(categoryOrder, c) {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// Grade renders the five competency grades followed by the analysis.
func (r *Renderer) Grade(g *grading.EssayGrade) string {
	var b strings.Builder

	header := fmt.Sprintf("Nota final: %d / %d", g.Total, 5*scoring.MaxBand)
	b.WriteString(r.st.Title.Render(header))
	if g.Offline {
		b.WriteString("  " + r.st.Dim.Render("(offline)"))
	}
	b.WriteString("\n")
	if g.Theme != "" {
		b.WriteString(r.st.Label.Render("Tema: ") + g.Theme + "\n")
	}
	b.WriteString(r.st.Dim.Render("run " + g.RunID))
	b.WriteString("\n\n")

	for _, c := range g.Ordered() {
		b.WriteString(r.card(r.competency(c)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.Analysis(g.Analysis))
	return b.String()
}

func (r *Renderer) competency(c grading.CompetencyResult) string {
	var b strings.Builder
	b.WriteString(r.st.Heading.Render(c.Name))
	b.WriteString("\n")
	b.WriteString(r.bar("", float64(c.Band)/scoring.MaxBand,
		fmt.Sprintf("%d / %d", c.Band, scoring.MaxBand), r.width-6))
	b.WriteString("\n")

	detail := fmt.Sprintf("base %d", c.BaseBand)
	if c.Proposed != nil {
		detail += fmt.Sprintf(", proposta %d", *c.Proposed)
		if c.Adjusted {
			detail += " (ajustada)"
		}
	}
	detail += fmt.Sprintf(", %d erros (%s)", c.Total, errorSourceLabel(c.ErrorSource))
	b.WriteString(r.st.Label.Render(detail))
	b.WriteString("\n")

	var counted []string
	for _, cat := range scoring.Categories {
		if n := c.Counts[cat]; n > 0 {
			counted = append(counted, fmt.Sprintf("%s %d", cat, n))
		}
	}
	if len(counted) > 0 {
		b.WriteString(r.st.Label.Render("categorias: "+strings.Join(counted, ", ")) + "\n")
	}

	for _, e := range c.Errors {
		b.WriteString(r.st.Bad.Render("✗ "))
		b.WriteString(fmt.Sprintf("%q %s", e.Excerpt, e.Explanation))
		if e.Suggestion != "" {
			b.WriteString(r.st.Dim.Render(" → " + e.Suggestion))
		}
		b.WriteString("\n")
	}
	if n := len(c.StyleSuggestions); n > 0 {
		b.WriteString(r.st.Dim.Render(fmt.Sprintf("%d sugestões de estilo não contadas", n)) + "\n")
	}
	if c.Justification != "" {
		b.WriteString(c.Justification + "\n")
	}

	keys := make([]string, 0, len(c.Evidence))
	for k := range c.Evidence {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + formatMetric(c.Evidence[k])
	}
	if len(parts) > 0 {
		b.WriteString(r.st.Dim.Render(strings.Join(parts, " · ")))
	}
	return strings.TrimRight(b.String(), "\n")
}

func errorSourceLabel(source string) string {
	switch source {
	case "supplied":
		return "informados"
	case "external":
		return "identificados automaticamente"
	}
	return "sem lista"
}

// Runs renders the grading history, newest first.
func (r *Renderer) Runs(runs []store.Run) string {
	if len(runs) == 0 {
		return "Nenhuma correção registrada.\n"
	}

	var b strings.Builder
	b.WriteString(r.st.Heading.Render(fmt.Sprintf("%-8s  %-19s  %5s  %-7s  %s",
		"Run", "Data", "Nota", "Modo", "Tema")))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(r.width, 72)))
	b.WriteString("\n")
	for _, run := range runs {
		mode := "online"
		if run.Offline {
			mode = "offline"
		}
		id := run.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(&b, "%-8s  %-19s  %5d  %-7s  %s\n",
			id, run.Timestamp.Local().Format("2006-01-02 15:04:05"), run.Total, mode, run.Theme)
	}
	return b.String()
}
