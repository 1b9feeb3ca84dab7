package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// compiled caches compiled schemas by Schema.Name.
var compiled sync.Map

// finish turns provider text into Response content. Structured requests
// are checked for truncation and validated against their schema; plain
// requests get the text encoded as a JSON string.
func finish(req Request, text, stop string) (json.RawMessage, error) {
	if req.Schema == nil {
		b, err := json.Marshal(text)
		if err != nil {
			return nil, fmt.Errorf("encode text response: %w", err)
		}
		return b, nil
	}
	content := json.RawMessage(text)
	if stop == stopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// validateResponse checks raw against schema. It returns
// *ErrInvalidResponse on any failure.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compileSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(schema.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON values, so normalize the Go map
	// through a JSON round trip.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schema.Name + ".json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	compiled.Store(schema.Name, sch)
	return sch, nil
}
