package llm

import (
	"context"
	"encoding/json"
)

// Provider sends a prompt to a hosted model and returns its output.
// Implementations exist for Gemini, OpenAI, OpenRouter, Anthropic and a
// scripted mock.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the backend's structured-output mode is used and Content holds
	// JSON already validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the resolved model identifier.
	ModelID() string
}

// Request is a single prompt.
type Request struct {
	// System carries the tutor persona and the exercise rules.
	System string

	// Messages is the conversation; exercise generation sends one user
	// message per request.
	Messages []Message

	// Schema, when non-nil, asks for JSON matching it.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the backend default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "exercise-batch". Also used
	// as the compiled-schema cache key.
	Name string

	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response is the model output.
type Response struct {
	// Content is schema-validated JSON when the request had a Schema,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
