// Package catalog loads and validates the static question and persona content.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/beautylens/internal/persona"
)

//go:embed quiz.yaml
var embedded []byte

type rawDocument struct {
	Personas  map[string]rawPersona `yaml:"personas"`
	Questions []rawQuestion         `yaml:"questions"`
}

type rawPersona struct {
	Title      string `yaml:"title"`
	Summary    string `yaml:"summary"`
	Perception string `yaml:"perception"`
}

type rawQuestion struct {
	ID       int         `yaml:"id"`
	Theme    string      `yaml:"theme"`
	Question string      `yaml:"question"`
	Options  []rawOption `yaml:"options"`
}

type rawOption struct {
	Label    string `yaml:"label"`
	Text     string `yaml:"text"`
	Analysis string `yaml:"analysis"`
	Persona  string `yaml:"persona"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Load(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded quiz catalog is invalid: %v", err))
	}
	return c
})

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	return defaultCatalog()
}

// LoadFile reads and validates a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load parses a YAML catalog document, validates it, and builds a Catalog.
func Load(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	return build(raw), nil
}

// build converts a validated raw document. Persona names are known-good here.
func build(raw rawDocument) *Catalog {
	c := &Catalog{
		questions: make([]Question, 0, len(raw.Questions)),
		byID:      make(map[int]int, len(raw.Questions)),
	}

	for name, p := range raw.Personas {
		key, _ := persona.ParseKey(name)
		c.personas[key.Index()] = persona.Persona{
			Key:        key,
			Title:      p.Title,
			Summary:    p.Summary,
			Perception: p.Perception,
		}
	}

	for _, rq := range raw.Questions {
		q := Question{
			ID:      rq.ID,
			Theme:   rq.Theme,
			Prompt:  rq.Question,
			Options: make([]Option, 0, len(rq.Options)),
		}
		for _, ro := range rq.Options {
			key, _ := persona.ParseKey(ro.Persona)
			q.Options = append(q.Options, Option{
				Label:    ro.Label,
				Text:     ro.Text,
				Analysis: ro.Analysis,
				Persona:  key,
			})
		}
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}

	return c
}
