// Package markers holds the lexical tables that drive structure detection and
// connective analysis: per paragraph kind element vocabularies, the first-aid
// suggestion for each element, and the connective categories.
//
// A Set is immutable once built. Build it with Default or Load at startup and
// pass it to the components that need it.
package markers

// Kind is the base paragraph kind a marker table belongs to.
type Kind string

const (
	KindIntroduction Kind = "introduction"
	KindDevelopment  Kind = "development"
	KindConclusion   Kind = "conclusion"
)

// Kinds lists every kind in table order.
var Kinds = []Kind{KindIntroduction, KindDevelopment, KindConclusion}

// Element names used across the default tables.
const (
	ElemContexto      = "contexto"
	ElemTese          = "tese"
	ElemArgumentos    = "argumentos"
	ElemArgumento     = "argumento"
	ElemJustificativa = "justificativa"
	ElemRepertorio    = "repertorio"
	ElemConclusao     = "conclusao"
	ElemAgente        = "agente"
	ElemAcao          = "acao"
	ElemModo          = "modo"
	ElemFinalidade    = "finalidade"
)

// Category is a rhetorical connective class.
type Category string

const (
	Aditivos     Category = "aditivos"
	Adversativos Category = "adversativos"
	Conclusivos  Category = "conclusivos"
	Explicativos Category = "explicativos"
	Sequenciais  Category = "sequenciais"
	Comparativos Category = "comparativos"
	Enfaticos    Category = "enfaticos"
)

// Element is one structural element of a paragraph kind.
type Element struct {
	Name        string
	Triggers    []string
	Suggestions []string
}

// ConnectiveGroup is the phrase list of one connective category.
type ConnectiveGroup struct {
	Category Category
	Phrases  []string
}

// Set is an immutable collection of marker tables.
type Set struct {
	elements    map[Kind][]Element
	connectives []ConnectiveGroup
	suggestions map[string][]string
}

// Elements returns a copy of the element table for kind, in table order.
func (s *Set) Elements(kind Kind) []Element {
	src := s.elements[kind]
	out := make([]Element, len(src))
	for i, e := range src {
		out[i] = Element{
			Name:        e.Name,
			Triggers:    append([]string(nil), e.Triggers...),
			Suggestions: append([]string(nil), e.Suggestions...),
		}
	}
	return out
}

// Vocabulary returns the element names for kind, in table order.
func (s *Set) Vocabulary(kind Kind) []string {
	src := s.elements[kind]
	out := make([]string, len(src))
	for i, e := range src {
		out[i] = e.Name
	}
	return out
}

// Triggers returns the trigger phrases of a single element of kind, or nil
// when the element is not defined.
func (s *Set) Triggers(kind Kind, element string) []string {
	for _, e := range s.elements[kind] {
		if e.Name == element {
			return append([]string(nil), e.Triggers...)
		}
	}
	return nil
}

// FirstSuggestion returns the first configured suggestion for element.
func (s *Set) FirstSuggestion(element string) (string, bool) {
	list := s.suggestions[element]
	if len(list) == 0 {
		return "", false
	}
	return list[0], true
}

// Connectives returns a copy of the connective groups, in table order.
func (s *Set) Connectives() []ConnectiveGroup {
	out := make([]ConnectiveGroup, len(s.connectives))
	for i, g := range s.connectives {
		out[i] = ConnectiveGroup{
			Category: g.Category,
			Phrases:  append([]string(nil), g.Phrases...),
		}
	}
	return out
}

// Categories returns the connective category names, in table order.
func (s *Set) Categories() []Category {
	out := make([]Category, len(s.connectives))
	for i, g := range s.connectives {
		out[i] = g.Category
	}
	return out
}
