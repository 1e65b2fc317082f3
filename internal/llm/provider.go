// Package llm talks to hosted language models for the essay assistants:
// paragraph element classification, connective proposals, grade
// justifications and error finding. Every backend sits behind Provider and
// is wrapped with timeout, retry and request-log decorators.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is a language model behind one Generate call.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// backend's structured output mode is used and Content is JSON that
	// validates against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is one prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, constrains the reply to JSON. Without it Content is
	// the raw text.
	Schema *Schema

	MaxTokens int
	// Temperature ranges 0..1; zero is the most deterministic.
	Temperature float64
}

// UserPrompt builds a request with a system prompt and one user message,
// the shape every essay assistant sends.
func UserPrompt(system, user string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
	}
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema for structured replies.
type Schema struct {
	// Name is kebab-case ("competency-grade"). It is the OpenAI schema name
	// and the key of the compiled schema cache.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is the model that served the request, which may differ from
	// the configured alias.
	Model string
	// StopReason is "end", "max_tokens" or "error".
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
