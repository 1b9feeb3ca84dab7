package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/beautylens/internal/persona"
)

// validateDocument performs the cross-field checks the JSON schema cannot
// express. It reports every problem found, not just the first.
func validateDocument(raw rawDocument) error {
	var errs []string

	seen := make(map[persona.Key]bool, persona.Count)
	for name := range raw.Personas {
		key, err := persona.ParseKey(name)
		if err != nil {
			errs = append(errs, fmt.Sprintf("persona catalog: %v", err))
			continue
		}
		seen[key] = true
	}
	for _, k := range persona.Keys() {
		if !seen[k] {
			errs = append(errs, fmt.Sprintf("persona catalog: missing %q", k))
		}
	}

	ids := make(map[int]bool, len(raw.Questions))
	for _, q := range raw.Questions {
		prefix := fmt.Sprintf("question %d", q.ID)
		if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %d", q.ID))
		}
		ids[q.ID] = true

		if len(q.Options) == 0 {
			errs = append(errs, prefix+": has no options")
		}

		labels := make(map[string]bool, len(q.Options))
		voters := make(map[persona.Key]string, len(q.Options))
		for _, o := range q.Options {
			if labels[o.Label] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option label %q", prefix, o.Label))
			}
			labels[o.Label] = true

			key, err := persona.ParseKey(o.Persona)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s option %s: %v", prefix, o.Label, err))
				continue
			}
			if first, ok := voters[key]; ok {
				errs = append(errs, fmt.Sprintf("%s: options %s and %s both vote for %q", prefix, first, o.Label, key))
				continue
			}
			voters[key] = o.Label
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
