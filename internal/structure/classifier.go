package structure

import (
	"github.com/charmbracelet/log"

	"github.com/abhisek/redacao/internal/logging"
	"github.com/abhisek/redacao/internal/markers"
)

// RuleInput is what a paragraph rule sees. Text is already folded.
type RuleInput struct {
	Text     string
	Position int
}

// Rule is one step of paragraph classification. It returns ("", false) when
// it does not apply.
type Rule interface {
	Name() string
	Apply(in RuleInput) (ParagraphType, bool)
}

// PositionRule maps the first four positions to the canonical layout.
type PositionRule struct{}

func (PositionRule) Name() string { return "position" }

func (PositionRule) Apply(in RuleInput) (ParagraphType, bool) {
	switch in.Position {
	case 0:
		return Introduction, true
	case 1:
		return Development1, true
	case 2:
		return Development2, true
	case 3:
		return Conclusion, true
	}
	return "", false
}

// MarkerRule fires when any trigger of the listed elements occurs.
type MarkerRule struct {
	name     string
	result   ParagraphType
	triggers []string
	matcher  markers.Matcher
}

// NewMarkerRule builds a rule over the triggers of elements in kind.
func NewMarkerRule(name string, set *markers.Set, kind markers.Kind, elements []string, result ParagraphType, m markers.Matcher) *MarkerRule {
	var triggers []string
	for _, e := range elements {
		triggers = append(triggers, set.Triggers(kind, e)...)
	}
	return &MarkerRule{name: name, result: result, triggers: triggers, matcher: m}
}

func (r *MarkerRule) Name() string { return r.name }

func (r *MarkerRule) Apply(in RuleInput) (ParagraphType, bool) {
	if r.matcher.ContainsAny(in.Text, r.triggers) {
		return r.result, true
	}
	return "", false
}

// DefaultRules returns the rules in priority order. Intervention vocabulary
// is checked before introduction vocabulary because it is the more
// distinctive of the two.
func DefaultRules(set *markers.Set, m markers.Matcher) []Rule {
	return []Rule{
		PositionRule{},
		NewMarkerRule("intervention-markers", set, markers.KindConclusion,
			[]string{markers.ElemAgente, markers.ElemAcao}, Conclusion, m),
		NewMarkerRule("introduction-markers", set, markers.KindIntroduction,
			[]string{markers.ElemContexto, markers.ElemTese}, Introduction, m),
	}
}

// RunRules returns the first rule result and the rule's name, or
// (Development1, "default") when none applies.
func RunRules(rules []Rule, in RuleInput) (ParagraphType, string) {
	for _, r := range rules {
		if t, ok := r.Apply(in); ok {
			return t, r.Name()
		}
	}
	return Development1, "default"
}

// Classifier assigns a ParagraphType to a paragraph.
type Classifier struct {
	rules  []Rule
	logger *log.Logger
}

// NewClassifier creates a classifier with the default rules.
func NewClassifier(set *markers.Set, strictness markers.Strictness, logger *log.Logger) *Classifier {
	return &Classifier{
		rules:  DefaultRules(set, markers.NewMatcher(strictness)),
		logger: logging.OrDiscard(logger),
	}
}

// Classify returns the type of a paragraph at position (NoPosition when
// unknown). It never fails: internal errors yield Development1.
func (c *Classifier) Classify(text string, position int) (t ParagraphType) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("paragraph classification failed", "panic", r, "position", position)
			t = Development1
		}
	}()

	t, rule := RunRules(c.rules, RuleInput{Text: markers.Fold(text), Position: position})
	c.logger.Debug("paragraph classified", "type", t, "rule", rule, "position", position)
	return t
}
