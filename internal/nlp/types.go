// Package nlp turns essay text into sentences of tagged tokens with
// dependency heads. A Parser may be backed by an external service (UDPipe) or
// by the built-in rule-based tagger.
package nlp

import (
	"context"
	"strings"
	"unicode"
)

// Universal POS tags used by the metrics engine.
const (
	PosNoun  = "NOUN"
	PosPropN = "PROPN"
	PosVerb  = "VERB"
	PosAux   = "AUX"
	PosAdj   = "ADJ"
	PosAdv   = "ADV"
	PosPron  = "PRON"
	PosDet   = "DET"
	PosAdp   = "ADP"
	PosCConj = "CCONJ"
	PosSConj = "SCONJ"
	PosNum   = "NUM"
	PosPunct = "PUNCT"
	PosSym   = "SYM"
	PosX     = "X"
)

// Parser segments and tags text.
type Parser interface {
	// Name identifies the parser in logs.
	Name() string
	// Parse returns the sentences of text. Implementations must return a
	// non-nil Doc when err is nil.
	Parse(ctx context.Context, text string) (*Doc, error)
}

// Doc is a parsed text.
type Doc struct {
	Sentences []Sentence
	// Parser names the parser that produced the doc.
	Parser string
}

// Sentence is a run of tokens whose heads point within the sentence.
type Sentence struct {
	Text   string
	Tokens []Token
}

// Token is one word or punctuation mark.
type Token struct {
	Text   string
	Lemma  string
	POS    string
	Feats  map[string]string
	Head   int // 1-based index of the head token, 0 for the root
	DepRel string
}

// IsPunct reports whether the token is punctuation or whitespace.
func (t Token) IsPunct() bool {
	if t.POS == PosPunct {
		return true
	}
	for _, r := range t.Text {
		if !unicode.IsPunct(r) && !unicode.IsSpace(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// Feat returns the value of a morphological feature, or "".
func (t Token) Feat(name string) string {
	if t.Feats == nil {
		return ""
	}
	return t.Feats[name]
}

// Words returns the non-punctuation tokens of the doc, in order.
func (d *Doc) Words() []Token {
	var out []Token
	for _, s := range d.Sentences {
		for _, t := range s.Tokens {
			if !t.IsPunct() {
				out = append(out, t)
			}
		}
	}
	return out
}

// HasWords reports whether the sentence has a non-punctuation token.
func (s Sentence) HasWords() bool {
	for _, t := range s.Tokens {
		if !t.IsPunct() {
			return true
		}
	}
	return false
}

// TokenCount returns the number of tokens including punctuation.
func (d *Doc) TokenCount() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	return n
}

// Depth returns the number of head hops from token i (0-based) to the root.
// Malformed heads stop the walk instead of looping.
func (s Sentence) Depth(i int) int {
	depth := 0
	cur := i
	for range len(s.Tokens) {
		if cur < 0 || cur >= len(s.Tokens) {
			break
		}
		head := s.Tokens[cur].Head
		if head <= 0 || head > len(s.Tokens) || head-1 == cur {
			break
		}
		depth++
		cur = head - 1
	}
	return depth
}

// Children returns the 0-based indexes of tokens whose head is token i.
func (s Sentence) Children(i int) []int {
	var out []int
	for j, t := range s.Tokens {
		if t.Head == i+1 {
			out = append(out, j)
		}
	}
	return out
}

// NounChunks counts maximal runs of nominal tokens, letting determiners,
// numerals and adjectives attach to the run that follows or precedes them.
func (s Sentence) NounChunks() int {
	chunks := 0
	inChunk := false
	for _, t := range s.Tokens {
		switch t.POS {
		case PosNoun, PosPropN, PosPron:
			if !inChunk {
				chunks++
				inChunk = true
			}
		case PosAdj, PosDet, PosNum:
			// Modifiers neither open nor close a chunk.
		default:
			inChunk = false
		}
	}
	return chunks
}

// IsComplex reports whether the sentence has a clausal dependent.
func (s Sentence) IsComplex() bool {
	for _, t := range s.Tokens {
		switch t.DepRel {
		case "ccomp", "xcomp", "advcl":
			return true
		}
	}
	return false
}

// Lower returns the lower-cased token text used for type counting.
func (t Token) Lower() string {
	return strings.ToLower(t.Text)
}
