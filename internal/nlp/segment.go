package nlp

import (
	"regexp"
	"strings"
)

// blankLine matches a paragraph break: two or more newlines, optionally with
// horizontal whitespace between them.
var blankLine = regexp.MustCompile(`\r?\n(?:[ \t]*\r?\n)+`)

// SplitParagraphs splits text on blank lines and returns the trimmed,
// non-empty paragraphs in order.
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range blankLine.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NaiveSentences splits on periods and drops empty pieces.
func NaiveSentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NaiveWords splits on whitespace.
func NaiveWords(text string) []string {
	return strings.Fields(text)
}
