package markers

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Strictness controls how a phrase must sit in the text to count as a match.
type Strictness int

const (
	// Substring matches anywhere, so "mas" matches inside "mastigar".
	Substring Strictness = iota
	// WordBoundary requires non-alphanumeric runes (or text edges) on both
	// sides of the phrase.
	WordBoundary
)

func (s Strictness) String() string {
	switch s {
	case Substring:
		return "substring"
	case WordBoundary:
		return "word"
	default:
		return fmt.Sprintf("strictness(%d)", int(s))
	}
}

// ParseStrictness parses "substring" or "word".
func ParseStrictness(v string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "substring", "":
		return Substring, nil
	case "word", "word-boundary", "wordboundary":
		return WordBoundary, nil
	default:
		return 0, fmt.Errorf("unknown match strictness: %q", v)
	}
}

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Contains reports whether o lies entirely inside s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Fold normalizes text to NFC and lower-cases it with Portuguese rules.
// Use it for presence checks where offsets do not matter.
func Fold(s string) string {
	return cases.Lower(language.BrazilianPortuguese).String(norm.NFC.String(s))
}

// FoldMapped folds s like Fold and returns, for every byte of the folded
// string plus its end, the byte offset in s it came from. s is composed one
// normalization segment at a time; bytes of a segment that NFC rewrote all
// map to the segment's start.
func FoldMapped(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)

	var buf [utf8.UTFMax]byte
	for start := 0; start < len(s); {
		n := norm.NFC.NextBoundaryInString(s[start:], true)
		if n <= 0 {
			n = len(s) - start
		}
		raw := s[start : start+n]
		seg := norm.NFC.String(raw)
		exact := seg == raw

		for i, r := range seg {
			src := start
			if exact {
				src += i
			}
			k := utf8.EncodeRune(buf[:], unicode.ToLower(r))
			b.Write(buf[:k])
			for range k {
				offsets = append(offsets, src)
			}
		}
		start += n
	}
	offsets = append(offsets, len(s))
	return b.String(), offsets
}

// Matcher finds folded phrases in folded text.
type Matcher struct {
	strictness Strictness
}

// NewMatcher returns a Matcher with the given strictness.
func NewMatcher(s Strictness) Matcher {
	return Matcher{strictness: s}
}

// Strictness returns the matcher's strictness.
func (m Matcher) Strictness() Strictness {
	return m.strictness
}

// Contains reports whether phrase occurs in text.
func (m Matcher) Contains(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	if m.strictness == Substring {
		return strings.Contains(text, phrase)
	}
	return len(m.FindAll(text, phrase)) > 0
}

// ContainsAny reports whether any of phrases occurs in text.
func (m Matcher) ContainsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if m.Contains(text, p) {
			return true
		}
	}
	return false
}

// FindAll returns the spans of every non-overlapping occurrence of phrase in
// text, left to right.
func (m Matcher) FindAll(text, phrase string) []Span {
	if phrase == "" {
		return nil
	}

	var spans []Span
	pos := 0
	for pos <= len(text)-len(phrase) {
		idx := strings.Index(text[pos:], phrase)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(phrase)

		if m.strictness == Substring || atBoundary(text, start, end) {
			spans = append(spans, Span{Start: start, End: end})
			pos = end
			continue
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return spans
}

func atBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
