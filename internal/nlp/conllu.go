package nlp

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseCoNLLU reads CoNLL-U output into a Doc. Multiword ranges ("3-4") and
// empty nodes ("5.1") are skipped, so head indexes refer to syntactic words.
func ParseCoNLLU(data string) (*Doc, error) {
	doc := &Doc{}
	var cur Sentence

	flush := func() {
		if len(cur.Tokens) > 0 {
			if cur.Text == "" {
				parts := make([]string, len(cur.Tokens))
				for i, t := range cur.Tokens {
					parts[i] = t.Text
				}
				cur.Text = strings.Join(parts, " ")
			}
			doc.Sentences = append(doc.Sentences, cur)
		}
		cur = Sentence{}
	}

	sc := bufio.NewScanner(strings.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		switch {
		case strings.TrimSpace(line) == "":
			flush()
			continue
		case strings.HasPrefix(line, "#"):
			if v, ok := strings.CutPrefix(line, "# text = "); ok {
				cur.Text = v
			}
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) != 10 {
			return nil, fmt.Errorf("conllu line %d: expected 10 columns, got %d", lineNo, len(cols))
		}
		if strings.ContainsAny(cols[0], "-.") {
			continue
		}

		head := 0
		if cols[6] != "_" {
			h, err := strconv.Atoi(cols[6])
			if err != nil {
				return nil, fmt.Errorf("conllu line %d: bad head %q: %w", lineNo, cols[6], err)
			}
			head = h
		}

		cur.Tokens = append(cur.Tokens, Token{
			Text:   cols[1],
			Lemma:  underscoreEmpty(cols[2]),
			POS:    cols[3],
			Feats:  parseFeats(cols[5]),
			Head:   head,
			DepRel: underscoreEmpty(cols[7]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read conllu: %w", err)
	}
	flush()

	return doc, nil
}

func parseFeats(s string) map[string]string {
	if s == "_" || s == "" {
		return nil
	}
	out := make(map[string]string)
	for _, kv := range strings.Split(s, "|") {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

func underscoreEmpty(s string) string {
	if s == "_" {
		return ""
	}
	return s
}
