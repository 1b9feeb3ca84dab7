package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://beautylens/catalog.json"

// documentSchema describes the catalog document shape. Cross-field rules
// (unique ids, persona coverage) are checked in validate.go.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"personas": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":      map[string]any{"type": "string", "minLength": 1},
					"summary":    map[string]any{"type": "string", "minLength": 1},
					"perception": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"title", "summary", "perception"},
				"additionalProperties": false,
			},
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":       map[string]any{"type": "integer"},
					"theme":    map[string]any{"type": "string"},
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"label":    map[string]any{"type": "string", "minLength": 1},
								"text":     map[string]any{"type": "string", "minLength": 1},
								"analysis": map[string]any{"type": "string"},
								"persona":  map[string]any{"type": "string"},
							},
							"required":             []any{"label", "text", "persona"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "question", "options"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"personas", "questions"},
	"additionalProperties": false,
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// Round-trip through JSON so the compiler sees plain JSON values.
	raw, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog schema: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add catalog schema: %w", err)
	}
	return c.Compile(documentSchemaURL)
})

// checkDocument validates a generic decoded document against documentSchema.
func checkDocument(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog is not JSON-compatible: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("re-read catalog: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	return nil
}
