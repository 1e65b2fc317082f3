package nlp

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// RuleParser is the built-in parser. It segments with Unicode text
// segmentation rules, tags with a closed-class lexicon plus suffix
// heuristics, and builds a shallow dependency tree around the first verb.
// It never fails, so it is the fallback when an external parser is missing.
type RuleParser struct{}

// NewRuleParser returns the built-in parser.
func NewRuleParser() *RuleParser {
	return &RuleParser{}
}

// Name returns "rules".
func (p *RuleParser) Name() string { return "rules" }

// Parse segments and tags text. Sentences made only of punctuation are
// dropped.
func (p *RuleParser) Parse(ctx context.Context, text string) (*Doc, error) {
	doc := &Doc{Parser: p.Name()}
	seg := sentences.FromString(text)
	for seg.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := strings.TrimSpace(seg.Value())
		if raw == "" {
			continue
		}
		sent := tagSentence(raw)
		if sent.HasWords() {
			doc.Sentences = append(doc.Sentences, sent)
		}
	}
	return doc, nil
}

func tagSentence(raw string) Sentence {
	sent := Sentence{Text: raw}

	tok := words.FromString(raw)
	first := true
	for tok.Next() {
		w := tok.Value()
		if strings.TrimSpace(w) == "" {
			continue
		}
		sent.Tokens = append(sent.Tokens, tagWord(w, first))
		first = false
	}

	attachHeads(&sent)
	return sent
}

func tagWord(w string, sentenceStart bool) Token {
	lower := strings.ToLower(w)
	t := Token{Text: w, Lemma: lower}

	if isPunctWord(w) {
		t.POS = PosPunct
		return t
	}

	if pos, ok := closedClass[lower]; ok {
		t.POS = pos
		if demonstratives[lower] {
			t.Feats = map[string]string{"PronType": "Dem"}
		}
		return t
	}

	r, _ := utf8.DecodeRuneInString(w)
	if !sentenceStart && unicode.IsUpper(r) {
		t.POS = PosPropN
		return t
	}

	pos, tense := guessOpenClass(lower)
	t.POS = pos
	if pos == PosVerb {
		if tense == "" && !isNonFinite(lower) {
			tense = "Pres"
		}
		if tense != "" {
			t.Feats = map[string]string{"Tense": tense}
		}
	}
	return t
}

func isNonFinite(lower string) bool {
	for _, s := range []string{"ar", "er", "ir", "ando", "endo", "indo"} {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

func isPunctWord(w string) bool {
	for _, r := range w {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// attachHeads builds a two or three level tree. The first verb (or auxiliary,
// or first word) is the root; determiners and prepositions attach to the next
// nominal; everything else attaches to the root.
func attachHeads(s *Sentence) {
	if len(s.Tokens) == 0 {
		return
	}

	root := -1
	for i, t := range s.Tokens {
		if t.POS == PosVerb {
			root = i
			break
		}
	}
	if root < 0 {
		for i, t := range s.Tokens {
			if t.POS == PosAux {
				root = i
				break
			}
		}
	}
	if root < 0 {
		for i, t := range s.Tokens {
			if !t.IsPunct() {
				root = i
				break
			}
		}
	}
	if root < 0 {
		root = 0
	}

	sawSub := ""
	for i := range s.Tokens {
		t := &s.Tokens[i]
		if i == root {
			t.Head = 0
			t.DepRel = "root"
			continue
		}

		t.Head = root + 1
		switch t.POS {
		case PosPunct:
			t.DepRel = "punct"
		case PosDet, PosAdp, PosNum:
			if n := nextNominal(s.Tokens, i); n >= 0 {
				t.Head = n + 1
			}
			switch t.POS {
			case PosDet:
				t.DepRel = "det"
			case PosAdp:
				t.DepRel = "case"
			default:
				t.DepRel = "nummod"
			}
		case PosAdj:
			if p := prevNominal(s.Tokens, i); p >= 0 {
				t.Head = p + 1
			}
			t.DepRel = "amod"
		case PosNoun, PosPropN, PosPron:
			if i < root {
				t.DepRel = "nsubj"
			} else {
				t.DepRel = "obj"
			}
		case PosAdv:
			t.DepRel = "advmod"
		case PosCConj:
			t.DepRel = "cc"
		case PosSConj:
			t.DepRel = "mark"
			sawSub = t.Lemma
		case PosAux:
			t.DepRel = "aux"
		case PosVerb:
			switch {
			case sawSub == "que":
				t.DepRel = "ccomp"
			case sawSub != "":
				t.DepRel = "advcl"
			case i > 0 && s.Tokens[i-1].POS == PosAdp:
				t.DepRel = "xcomp"
			default:
				t.DepRel = "conj"
			}
		default:
			t.DepRel = "dep"
		}
	}
}

func nextNominal(toks []Token, from int) int {
	for j := from + 1; j < len(toks); j++ {
		switch toks[j].POS {
		case PosNoun, PosPropN, PosPron:
			return j
		case PosPunct, PosVerb, PosAux, PosCConj, PosSConj:
			return -1
		}
	}
	return -1
}

func prevNominal(toks []Token, from int) int {
	for j := from - 1; j >= 0; j-- {
		switch toks[j].POS {
		case PosNoun, PosPropN:
			return j
		case PosPunct, PosVerb, PosAux, PosCConj, PosSConj:
			return -1
		}
	}
	return -1
}
