package ai

// request is the provider-neutral request handed to a wire codec after the
// token budget has been computed.
type request struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Usage normalizes the token accounting of both providers into one shape.
type Usage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	Cost             float64 `json:"cost"`
}

// codec translates between the internal request shape and one provider's
// wire protocol. A codec is selected once from the model's provider and
// threaded through the retry machine; nothing re-branches on provider
// strings per field.
type codec interface {
	Name() Provider
	URL(baseURL string) string
	Headers(apiKey string) map[string]string
	Body(req request) ([]byte, error)
	ExtractContent(raw []byte) (string, Usage, error)
}

// codecFor returns the wire codec for a provider.
func codecFor(p Provider) codec {
	if p == ProviderClaude {
		return claudeCodec{}
	}
	return openAICodec{}
}

// apiErrorEnvelope matches the error object both providers embed in
// response bodies (including 2xx bodies, which OpenAI emits for some
// engine-level failures).
type apiErrorEnvelope struct {
	Error *apiErrorBody `json:"error"`
}

type apiErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}
