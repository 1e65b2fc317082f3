package scoring

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoGrade is returned when a justification carries no usable grade.
var ErrNoGrade = errors.New("scoring: no grade in justification")

// DefaultJustification stands in when a response has a grade but no text.
const DefaultJustification = "Não foi possível extrair uma justificativa adequada."

// Justification is a parsed grade proposal.
type Justification struct {
	Grade int    `json:"nota"`
	Text  string `json:"justificativa"`
}

var (
	firstNumber = regexp.MustCompile(`\d+`)
	codeFence   = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// ParseJustification extracts a proposal from either a JSON object
// ({"nota": 160, "justificativa": "..."}) or "Nota:" / "Justificativa:"
// lines. The grade is returned as written; callers snap it.
func ParseJustification(raw string) (Justification, error) {
	s := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}
	if s == "" {
		return Justification{}, ErrNoGrade
	}
	if strings.HasPrefix(s, "{") {
		return parseJSONJustification(s)
	}
	return parseLineJustification(s)
}

func parseJSONJustification(s string) (Justification, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return Justification{}, errors.Join(ErrNoGrade, err)
	}

	grade, ok := -1, false
	for _, k := range []string{"nota", "grade"} {
		switch v := raw[k].(type) {
		case float64:
			grade, ok = int(math.Round(v)), true
		case string:
			if n, err := leadingNumber(v); err == nil {
				grade, ok = n, true
			}
		}
		if ok {
			break
		}
	}
	if !ok {
		return Justification{}, ErrNoGrade
	}

	text := ""
	for _, k := range []string{"justificativa", "justification"} {
		if v, isStr := raw[k].(string); isStr && strings.TrimSpace(v) != "" {
			text = strings.TrimSpace(v)
			break
		}
	}
	if text == "" {
		text = DefaultJustification
	}
	return Justification{Grade: grade, Text: text}, nil
}

func parseLineJustification(s string) (Justification, error) {
	var (
		grade   = -1
		text    []string
		reading bool
	)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "*#"))
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "nota:"):
			if n, err := leadingNumber(line[len("nota:"):]); err == nil {
				grade = n
			}
			reading = false
		case strings.HasPrefix(lower, "justificativa:"):
			reading = true
			if rest := strings.TrimLeft(line[len("justificativa:"):], "* "); rest != "" {
				text = append(text, rest)
			}
		case reading && line != "":
			text = append(text, line)
		}
	}
	if grade < 0 {
		return Justification{}, ErrNoGrade
	}
	j := Justification{Grade: grade, Text: strings.Join(text, " ")}
	if j.Text == "" {
		j.Text = DefaultJustification
	}
	return j, nil
}

func leadingNumber(s string) (int, error) {
	m := firstNumber.FindString(s)
	if m == "" {
		return 0, ErrNoGrade
	}
	return strconv.Atoi(m)
}
