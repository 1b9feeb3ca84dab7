// Package llm wraps the chat model providers used for AI readings.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a single structured completion.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider requests native structured output and the returned
	// Content has been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema constrains the response. When nil, Content is raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the response must satisfy.
type Schema struct {
	// Name is kebab-case, e.g. "persona-reading". It doubles as the
	// OpenAI schema name and the compiled schema cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
