package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// ValidateAPIKey checks a key against its provider with a cheap
// authenticated request. OpenAI keys are checked with a models listing;
// Claude keys with a one-token message. baseURL overrides the production
// endpoint (used in tests); pass "" normally.
func ValidateAPIKey(ctx context.Context, key string, provider Provider, baseURL string) error {
	if key == "" {
		return NewError(ErrMissingAPIKey, "API key is empty.")
	}

	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	var req *http.Request
	var err error
	switch provider {
	case ProviderClaude:
		if baseURL == "" {
			baseURL = defaultClaudeBaseURL
		}
		payload, merr := json.Marshal(claudeRequest{
			Model:     "claude-3-haiku-20240307",
			MaxTokens: 1,
			Messages:  []claudeMessage{{Role: "user", Content: "ping"}},
		})
		if merr != nil {
			return NewError(ErrGenerationFailed, "Failed to build the validation request.")
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/messages", bytes.NewReader(payload))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("x-api-key", key)
			req.Header.Set("anthropic-version", anthropicVersion)
		}
	default:
		if baseURL == "" {
			baseURL = defaultOpenAIBaseURL
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/models", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+key)
		}
	}
	if err != nil {
		return NewError(ErrConnectionError, "Failed to build the validation request.")
	}

	client := &http.Client{Timeout: validateTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return NewError(ErrConnectionError, "Could not reach the AI provider.")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewError(ErrInvalidAPIKey, "Invalid API key. Check your provider credentials.")
	default:
		return NewError(ErrAPIError, statusMessage(resp.StatusCode))
	}
}
