package ports

import "context"

// ChatMessage is one turn in a chat-completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single call against the LLM provider
type ChatRequest struct {
	Model    string
	System   string
	Messages []ChatMessage
	// JSONMode forces a structured JSON response where the provider
	// supports it
	JSONMode  bool
	MaxTokens int
}

// LLMClient interface for LLM providers
type LLMClient interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}
