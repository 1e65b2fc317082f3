package structure

import "math"

// CombinerConfig weights the two sources of an element analysis.
type CombinerConfig struct {
	DeterministicWeight float64
	ExternalWeight      float64
	MaxSuggestions      int
}

// DefaultCombinerConfig returns 60/40 weighting and three suggestions.
func DefaultCombinerConfig() CombinerConfig {
	return CombinerConfig{
		DeterministicWeight: 0.6,
		ExternalWeight:      0.4,
		MaxSuggestions:      3,
	}
}

// Combine merges a deterministic analysis with an optional external one.
// An element stays absent only when both sources call it absent. With no
// external analysis the deterministic one is returned unchanged.
func Combine(det ElementAnalysis, ext *ElementAnalysis, cfg CombinerConfig) ElementAnalysis {
	if ext == nil {
		return det
	}

	present := union(det.Present, ext.Present)
	inPresent := toSet(present)

	extAbsent := toSet(ext.Absent)
	absent := []string{}
	for _, e := range dedupe(det.Absent) {
		if extAbsent[e] && !inPresent[e] {
			absent = append(absent, e)
		}
	}

	score := cfg.DeterministicWeight*det.Score + cfg.ExternalWeight*ext.Score

	return ElementAnalysis{
		Present:     present,
		Absent:      absent,
		Score:       math.Max(0, math.Min(1, score)),
		Suggestions: mergeSuggestions(det.Suggestions, ext.Suggestions, cfg.MaxSuggestions),
	}
}

// mergeSuggestions lists suggestions both sources share first, then the
// rest (deterministic before external), up to limit.
func mergeSuggestions(det, ext []string, limit int) []string {
	extSet := toSet(ext)
	detSet := toSet(det)

	out := []string{}
	seen := make(map[string]bool)
	add := func(s string) {
		if len(out) < limit && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, s := range det {
		if extSet[s] {
			add(s)
		}
	}
	for _, s := range det {
		add(s)
	}
	for _, s := range ext {
		if !detSet[s] {
			add(s)
		}
	}
	return out
}

func union(a, b []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

func dedupe(in []string) []string {
	return union(in, nil)
}

func toSet(in []string) map[string]bool {
	m := make(map[string]bool, len(in))
	for _, s := range in {
		m[s] = true
	}
	return m
}
