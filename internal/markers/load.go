package markers

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the YAML form of a marker Set. Sections left out of a file keep
// their built-in values.
type File struct {
	Introduction []ElementSpec       `yaml:"introduction"`
	Development  []ElementSpec       `yaml:"development"`
	Conclusion   []ElementSpec       `yaml:"conclusion"`
	Connectives  []GroupSpec         `yaml:"connectives"`
	Suggestions  map[string][]string `yaml:"suggestions"`
}

// ElementSpec is one element entry in a marker file.
type ElementSpec struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
}

// GroupSpec is one connective category entry in a marker file.
type GroupSpec struct {
	Category string   `yaml:"category"`
	Phrases  []string `yaml:"phrases"`
}

// Load reads a YAML marker file and overlays it on the built-in tables.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read marker file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML marker tables and overlays them on the built-in tables.
func Parse(data []byte) (*Set, error) {
	f := defaultFile()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode marker file: %w", err)
	}
	return build(f)
}

// build validates f and freezes it into a Set. Trigger phrases are folded
// to lower case so matchers can compare against folded text directly.
func build(f File) (*Set, error) {
	s := &Set{
		elements:    make(map[Kind][]Element, len(Kinds)),
		suggestions: make(map[string][]string, len(f.Suggestions)),
	}

	for name, list := range f.Suggestions {
		s.suggestions[name] = append([]string(nil), list...)
	}

	tables := map[Kind][]ElementSpec{
		KindIntroduction: f.Introduction,
		KindDevelopment:  f.Development,
		KindConclusion:   f.Conclusion,
	}
	for _, kind := range Kinds {
		seen := make(map[string]bool)
		for _, spec := range tables[kind] {
			if spec.Name == "" {
				return nil, fmt.Errorf("%s: element with empty name", kind)
			}
			if seen[spec.Name] {
				return nil, fmt.Errorf("%s: duplicate element %q", kind, spec.Name)
			}
			seen[spec.Name] = true

			triggers, err := foldPhrases(spec.Triggers)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", kind, spec.Name, err)
			}
			s.elements[kind] = append(s.elements[kind], Element{
				Name:        spec.Name,
				Triggers:    triggers,
				Suggestions: s.suggestions[spec.Name],
			})
		}
	}

	seenCat := make(map[string]bool)
	for _, g := range f.Connectives {
		if g.Category == "" {
			return nil, errors.New("connective group with empty category")
		}
		if seenCat[g.Category] {
			return nil, fmt.Errorf("duplicate connective category %q", g.Category)
		}
		seenCat[g.Category] = true

		phrases, err := foldPhrases(g.Phrases)
		if err != nil {
			return nil, fmt.Errorf("connectives/%s: %w", g.Category, err)
		}
		s.connectives = append(s.connectives, ConnectiveGroup{
			Category: Category(g.Category),
			Phrases:  phrases,
		})
	}

	return s, nil
}

func foldPhrases(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, errors.New("empty phrase")
		}
		out = append(out, Fold(p))
	}
	return out, nil
}
