package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeStructured parses LLM output into a typed value after stripping the
// wrappers models habitually add around JSON.
func DecodeStructured[T any](content string) (*T, error) {
	cleaned := cleanJSONContent(content)

	var result T
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("parse JSON content into result type: %w", err)
	}
	return &result, nil
}

// cleanJSONContent removes markdown code fences and conversational chatter
// that models emit around JSON payloads
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Drop leading chatter lines ("Here is the JSON you asked for:" and
	// friends) that precede the first brace or bracket.
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if trimmed == "" ||
			strings.HasPrefix(lower, "here is") ||
			strings.HasPrefix(lower, "the json") ||
			strings.HasPrefix(lower, "output:") ||
			strings.HasPrefix(lower, "response:") ||
			strings.HasPrefix(lower, "##") {
			continue
		}
		cleaned = append(cleaned, line)
	}
	content = strings.TrimSpace(strings.Join(cleaned, "\n"))

	// A remaining prose prefix before the opening brace gets cut off.
	if idx := strings.IndexAny(content, "{["); idx > 0 {
		prefix := content[:idx]
		if !strings.ContainsAny(prefix, "{[") {
			content = content[idx:]
		}
	}

	return content
}
