package ai

import (
	"encoding/json"
	"fmt"
)

// defaultOpenAIBaseURL is the production endpoint root.
const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openAICodec speaks the OpenAI chat completions protocol
// (POST /v1/chat/completions): system and user prompts travel together in
// the messages array, auth is a Bearer header.
type openAICodec struct{}

func (openAICodec) Name() Provider { return ProviderOpenAI }

func (openAICodec) URL(baseURL string) string {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return baseURL + "/chat/completions"
}

func (openAICodec) Headers(apiKey string) map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + apiKey,
	}
}

func (openAICodec) Body(req request) ([]byte, error) {
	body := openAIRequest{
		Model: req.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai marshal: %w", err)
	}
	return payload, nil
}

// ExtractContent pulls choices[0].message.content and the usage block out
// of a successful response body.
func (openAICodec) ExtractContent(raw []byte) (string, Usage, error) {
	var result openAIResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", Usage{}, fmt.Errorf("openai unmarshal: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", Usage{}, fmt.Errorf("openai: no choices returned")
	}
	usage := Usage{
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		TotalTokens:      result.Usage.TotalTokens,
	}
	return result.Choices[0].Message.Content, usage, nil
}

// --- OpenAI chat completions request/response types ---

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
	Usage   openAIUsage    `json:"usage"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
