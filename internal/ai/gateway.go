// Package ai provides a provider-agnostic gateway to generative backends.
package ai

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input to a completion.
type CompletionRequest struct {
	Messages         []Message `json:"messages"`
	Model            string    `json:"model,omitempty"`
	MaxTokens        int       `json:"max_tokens,omitempty"`
	Temperature      float64   `json:"temperature,omitempty"`
	ResponseMIMEType string    `json:"response_mime_type,omitempty"` // e.g. "application/json"
	EnableSearch     bool      `json:"enable_search,omitempty"`      // web-grounded citations (Google only)
	ThinkingBudget   int       `json:"thinking_budget,omitempty"`    // reasoning token budget (Google only)
}

// GroundingChunk is one web citation attached to a grounded completion.
type GroundingChunk struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// CompletionResponse is the output from a completion.
type CompletionResponse struct {
	Content      string           `json:"content"`
	Model        string           `json:"model"`
	InputTokens  int              `json:"input_tokens"`
	OutputTokens int              `json:"output_tokens"`
	Grounding    []GroundingChunk `json:"grounding,omitempty"`
}

// TotalTokens returns the sum of input and output tokens.
func (r CompletionResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// Provider is the interface all generative backends must implement.
// Implementations perform a single attempt per call: no retries, no fallback.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	HealthCheck(ctx context.Context) error
}
