package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"gocouncil/ports"
)

// Config holds LLM client configuration
type Config struct {
	Model       string        // e.g. "gpt-4.1-mini"
	APIKey      string        // OpenAI API key
	BaseURL     string        // Optional override (default: https://api.openai.com/v1)
	Temperature float64       // 0.0-1.0, lower = more deterministic
	MaxTokens   int           // Max tokens in response
	Timeout     time.Duration // Per-request timeout
}

// NewClient creates an LLM client based on config
func NewClient(config Config) (ports.LLMClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIClient{
		APIKey:      config.APIKey,
		BaseURL:     baseURL,
		Timeout:     config.Timeout,
		Temperature: config.Temperature,
	}, nil
}

// OpenAIClient implements ports.LLMClient against the OpenAI chat
// completions API
type OpenAIClient struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

// ResponseFormat forces structured output from the provider
type ResponseFormat struct {
	Type string `json:"type"`
}

func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ports.ChatRequest) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("missing model")
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model               string          `json:"model"`
		Messages            []msg           `json:"messages"`
		Temperature         float64         `json:"temperature,omitempty"`
		MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
		ResponseFormat      *ResponseFormat `json:"response_format,omitempty"`
	}

	system := req.System
	// JSON mode requires the word "JSON" somewhere in the instructions.
	if req.JSONMode && !strings.Contains(strings.ToLower(system), "json") {
		system += "\n\nIMPORTANT: Respond with valid JSON output."
	}

	messages := make([]msg, 0, len(req.Messages)+1)
	if system != "" {
		messages = append(messages, msg{Role: "system", Content: system})
	}
	for _, m := range req.Messages {
		messages = append(messages, msg{Role: m.Role, Content: m.Content})
	}

	body := reqBody{
		Model:               req.Model,
		Messages:            messages,
		Temperature:         c.Temperature,
		MaxCompletionTokens: maxTokens,
	}
	if req.JSONMode {
		body.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: c.Timeout}
	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, string(respRaw))
	}

	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	type respBody struct {
		Choices []choice `json:"choices"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// MockLLMClient is a mock LLM client for testing
type MockLLMClient struct {
	Response string                                        // Set this for a fixed response
	Error    error                                         // Set this to simulate transport errors
	Fn       func(req ports.ChatRequest) (string, error)   // Set this to script per-request behavior

	mu    sync.Mutex
	calls []ports.ChatRequest
}

func (m *MockLLMClient) ChatCompletion(ctx context.Context, req ports.ChatRequest) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Fn != nil {
		return m.Fn(req)
	}
	if m.Error != nil {
		return "", m.Error
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return `{"content":"Looks solid.","vote":"Approve","reasoning":"Meets the bar.","score":4}`, nil
}

// Calls returns a copy of the requests seen so far
func (m *MockLLMClient) Calls() []ports.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.ChatRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many requests the mock has served
func (m *MockLLMClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
