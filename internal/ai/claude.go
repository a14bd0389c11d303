package ai

import (
	"encoding/json"
	"fmt"
)

const (
	// defaultClaudeBaseURL is the production endpoint root.
	defaultClaudeBaseURL = "https://api.anthropic.com"

	// anthropicVersion is the pinned Messages API revision.
	anthropicVersion = "2023-06-01"
)

// claudeCodec speaks the Anthropic Messages protocol (POST /v1/messages):
// the system prompt travels in a dedicated field outside the messages
// array, auth is an x-api-key header plus a version header.
type claudeCodec struct{}

func (claudeCodec) Name() Provider { return ProviderClaude }

func (claudeCodec) URL(baseURL string) string {
	if baseURL == "" {
		baseURL = defaultClaudeBaseURL
	}
	return baseURL + "/v1/messages"
}

func (claudeCodec) Headers(apiKey string) map[string]string {
	return map[string]string{
		"Content-Type":      "application/json",
		"x-api-key":         apiKey,
		"anthropic-version": anthropicVersion,
	}
}

func (claudeCodec) Body(req request) ([]byte, error) {
	body := claudeRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Messages: []claudeMessage{
			{Role: "user", Content: req.User},
		},
		Temperature: req.Temperature,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("claude marshal: %w", err)
	}
	return payload, nil
}

// ExtractContent pulls the first text content block and the usage counts
// out of a successful response body.
func (claudeCodec) ExtractContent(raw []byte) (string, Usage, error) {
	var result claudeResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", Usage{}, fmt.Errorf("claude unmarshal: %w", err)
	}
	usage := Usage{
		PromptTokens:     result.Usage.InputTokens,
		CompletionTokens: result.Usage.OutputTokens,
		TotalTokens:      result.Usage.InputTokens + result.Usage.OutputTokens,
	}
	for _, block := range result.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, usage, nil
		}
	}
	return "", Usage{}, fmt.Errorf("claude: no text content in response")
}

// --- Anthropic Messages API types ---

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	System      string          `json:"system,omitempty"`
	Messages    []claudeMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
	Usage   claudeUsage          `json:"usage"`
}
