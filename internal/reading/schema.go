package reading

import "github.com/abhisek/beautylens/internal/llm"

// Schema is the JSON schema a reading must satisfy.
var Schema = &llm.Schema{
	Name:        "persona-reading",
	Description: "A short personalized reading of a beauty perception persona",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One evocative line naming how this person sees beauty (4-10 words)",
			},
			"reflection": map[string]any{
				"type":        "string",
				"description": "Second-person reflection on the answers (3-5 sentences)",
			},
			"strengths": map[string]any{
				"type":        "array",
				"description": "Two or three strengths of this way of seeing",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
			},
			"blind_spot": map[string]any{
				"type":        "string",
				"description": "One gentle note on what this lens tends to overlook",
			},
		},
		"required":             []any{"headline", "reflection", "strengths", "blind_spot"},
		"additionalProperties": false,
	},
}
