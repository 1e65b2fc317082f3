package grading

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/redacao/internal/scoring"
)

// LoadErrors reads a JSON object keyed by competency ("comp1" or "1"). Each
// value is either an array of errors or a string holding ERRO ... FIM_ERRO
// blocks. An empty array means the competency was reviewed and is clean.
func LoadErrors(r io.Reader) (map[CompetencyID][]scoring.GradedError, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode error list: %w", err)
	}

	out := make(map[CompetencyID][]scoring.GradedError, len(raw))
	for key, value := range raw {
		id, err := ParseCompetencyID(strings.TrimSpace(key))
		if err != nil {
			return nil, err
		}

		var blocks string
		if err := json.Unmarshal(value, &blocks); err == nil {
			out[id] = scoring.ParseErrorBlocks(blocks)
			continue
		}

		var errs []scoring.GradedError
		if err := json.Unmarshal(value, &errs); err != nil {
			return nil, fmt.Errorf("decode errors of %s: %w", id, err)
		}
		if errs == nil {
			errs = []scoring.GradedError{}
		}
		out[id] = errs
	}
	return out, nil
}
