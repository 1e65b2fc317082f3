package connectives

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/abhisek/redacao/internal/markers"
)

// Analyzer scans text for the phrases of every connective category.
type Analyzer struct {
	cfg     Config
	groups  []markers.ConnectiveGroup
	known   map[markers.Category]bool
	matcher markers.Matcher
}

// NewAnalyzer creates an Analyzer over the connective groups of set.
func NewAnalyzer(set *markers.Set, cfg Config) *Analyzer {
	groups := set.Connectives()
	known := make(map[markers.Category]bool, len(groups))
	for _, g := range groups {
		known[g.Category] = true
	}
	return &Analyzer{
		cfg:     cfg,
		groups:  groups,
		known:   known,
		matcher: markers.NewMatcher(cfg.Strictness),
	}
}

// Analyze returns the connective profile of text. Blank text yields a
// zero-valued analysis.
func (a *Analyzer) Analyze(text string) Analysis {
	if strings.TrimSpace(text) == "" {
		return a.empty()
	}
	return a.summarize(a.scan(text))
}

// Count returns the number of connective occurrences in text.
func (a *Analyzer) Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(a.scan(text))
}

// Merge adds externally proposed occurrences to base. Proposals with an
// invalid span, an unknown category, or a span overlapping an occurrence
// already kept are dropped. Statistics are recomputed over the union.
func (a *Analyzer) Merge(text string, base Analysis, external []Occurrence) Analysis {
	if len(external) == 0 {
		return base
	}

	kept := append([]Occurrence(nil), base.Occurrences...)
	for _, ext := range external {
		if ext.Span.Start < 0 || ext.Span.Start >= ext.Span.End || ext.Span.End > len(text) {
			continue
		}
		if !a.known[ext.Category] {
			continue
		}
		if overlapsAny(kept, ext.Span) {
			continue
		}
		ext.Text = markers.Fold(strings.TrimSpace(ext.Text))
		if ext.Text == "" {
			ext.Text = markers.Fold(text[ext.Span.Start:ext.Span.End])
		}
		ext.Source = SourceExternal
		kept = append(kept, ext)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Span.Start < kept[j].Span.Start
	})
	if len(kept) == 0 {
		return a.empty()
	}
	return a.summarize(kept)
}

type candidate struct {
	phrase   string
	category markers.Category
	span     markers.Span // into folded text
	order    int
}

// scan finds every phrase occurrence. Longer phrases claim their span first
// so "assim" inside "assim como" is not counted twice.
func (a *Analyzer) scan(text string) []Occurrence {
	folded, offsets := markers.FoldMapped(text)

	var cands []candidate
	order := 0
	for _, g := range a.groups {
		for _, p := range g.Phrases {
			for _, sp := range a.matcher.FindAll(folded, p) {
				cands = append(cands, candidate{phrase: p, category: g.Category, span: sp, order: order})
			}
			order++
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		li, lj := cands[i].span.End-cands[i].span.Start, cands[j].span.End-cands[j].span.Start
		if li != lj {
			return li > lj
		}
		if cands[i].order != cands[j].order {
			return cands[i].order < cands[j].order
		}
		return cands[i].span.Start < cands[j].span.Start
	})

	var accepted []candidate
	for _, c := range cands {
		clash := false
		for _, k := range accepted {
			if k.span.Overlaps(c.span) {
				clash = true
				break
			}
		}
		if !clash {
			accepted = append(accepted, c)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].span.Start < accepted[j].span.Start
	})

	out := make([]Occurrence, len(accepted))
	for i, c := range accepted {
		out[i] = Occurrence{
			Text:     c.phrase,
			Category: c.category,
			Span:     markers.Span{Start: offsets[c.span.Start], End: offsets[c.span.End]},
			Source:   SourceRules,
		}
	}
	return out
}

func overlapsAny(occs []Occurrence, sp markers.Span) bool {
	for _, o := range occs {
		if o.Span.Overlaps(sp) {
			return true
		}
	}
	return false
}

func (a *Analyzer) empty() Analysis {
	counts := make(map[markers.Category]int, len(a.groups))
	for _, g := range a.groups {
		counts[g.Category] = 0
	}
	return Analysis{
		Occurrences:    []Occurrence{},
		CategoryCounts: counts,
		Repeated:       map[string]int{},
	}
}

func (a *Analyzer) summarize(occs []Occurrence) Analysis {
	res := a.empty()

	freq := make(map[string]int)
	for _, o := range occs {
		freq[o.Text]++
		res.CategoryCounts[o.Category]++
	}
	for phrase, n := range freq {
		if n > 1 {
			res.Repeated[phrase] = n
		}
	}

	res.Occurrences = make([]Occurrence, len(occs))
	for i, o := range occs {
		o.Frequency = freq[o.Text]
		res.Occurrences[i] = o
	}

	res.Score = a.score(res)
	res.Feedback = a.feedback(res)
	return res
}

func (a *Analyzer) score(res Analysis) float64 {
	total := len(a.groups)
	if total == 0 {
		return 0
	}

	used := 0
	var saturation float64
	for _, g := range a.groups {
		n := res.CategoryCounts[g.Category]
		if n > 0 {
			used++
		}
		if a.cfg.IdealPerCategory > 0 {
			saturation += math.Min(float64(n)/a.cfg.IdealPerCategory, 1)
		}
	}

	variety := float64(used) / float64(total) * a.cfg.VarietyWeight
	quantity := saturation / float64(total) * a.cfg.QuantityWeight
	repetition := a.cfg.RepeatBudget - math.Min(a.cfg.RepeatBudget, a.cfg.RepeatPenalty*float64(len(res.Repeated)))

	return clamp01(variety + quantity + repetition)
}

func (a *Analyzer) feedback(res Analysis) []string {
	var out []string

	if len(res.Occurrences) == 0 {
		return []string{"Utilize conectivos para melhorar a coesão do texto."}
	}

	used := res.CategoriesUsed()
	if used >= a.cfg.ExcellentVariety {
		out = append(out, fmt.Sprintf("Excelente variedade de conectivos: %d de %d categorias.", used, len(a.groups)))
	}

	for _, cat := range []markers.Category{markers.Conclusivos, markers.Explicativos} {
		if !a.known[cat] || res.CategoryCounts[cat] > 0 {
			continue
		}
		out = append(out, fmt.Sprintf("Use conectivos %s, como %s.", cat, a.examples(cat, 3)))
	}

	phrases := make([]string, 0, len(res.Repeated))
	for p := range res.Repeated {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)
	for _, p := range phrases {
		out = append(out, fmt.Sprintf("%q repetido %d vezes; varie com outros conectivos.", p, res.Repeated[p]))
	}

	return out
}

func (a *Analyzer) examples(cat markers.Category, n int) string {
	for _, g := range a.groups {
		if g.Category != cat {
			continue
		}
		if len(g.Phrases) < n {
			n = len(g.Phrases)
		}
		return strings.Join(g.Phrases[:n], ", ")
	}
	return ""
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
