package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"layoutberg/internal/prompt"
)

const (
	// maxRetries bounds HTTP attempts per generate call. Never exceeded,
	// even under persistent 5xx responses.
	maxRetries = 3

	// retryDelay is the linear backoff base: sleep retryDelay*attempt
	// between tries unless the provider sent Retry-After.
	retryDelay = 2 * time.Second

	generateTimeout = 60 * time.Second
	validateTimeout = 30 * time.Second
)

// Config holds provider credentials and generation defaults. Loaded once at
// the composition root; the client never re-reads configuration.
type Config struct {
	OpenAIKey     string
	ClaudeKey     string
	OpenAIBaseURL string // empty means the production endpoint
	ClaudeBaseURL string
	DefaultModel  string
	Temperature   float64
}

// Options are per-request overrides and annotations.
type Options struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Style       string  `json:"style,omitempty"`
	Layout      string  `json:"layout,omitempty"`
	Industry    string  `json:"industry,omitempty"`
	Audience    string  `json:"audience,omitempty"`
	ReplaceMode bool    `json:"replace_mode,omitempty"`
	UserID      string  `json:"-"`
}

// Prompts records what was actually sent, for debugging and snapshots.
type Prompts struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Result is a successful generation.
type Result struct {
	Content string  `json:"content"`
	Usage   Usage   `json:"usage"`
	Model   string  `json:"model"`
	Prompts Prompts `json:"prompts"`
}

// TrackedCall is handed to the UsageTracker after every API call that
// reached the network, success or failure.
type TrackedCall struct {
	UserID    string
	Prompt    string
	Response  string
	Model     string
	Usage     Usage
	Succeeded bool
}

// UsageTracker persists generation and usage records. Implementations must
// not fail the generation: tracking errors are logged, not returned.
type UsageTracker interface {
	Track(ctx context.Context, call TrackedCall)
}

// Client normalizes the OpenAI and Claude wire protocols into one result
// shape, enforces token budgets and retries transient failures.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tracker    UsageTracker

	// sleep is swapped out in tests so retry timing is observable without
	// real delays.
	sleep func(time.Duration)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTracker attaches a usage tracker.
func WithTracker(t UsageTracker) ClientOption {
	return func(c *Client) { c.tracker = t }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an API client.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: generateTimeout},
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiKeyFor returns the configured key for a provider, or "" if absent.
func (c *Client) apiKeyFor(p Provider) string {
	if p == ProviderClaude {
		return c.cfg.ClaudeKey
	}
	return c.cfg.OpenAIKey
}

func (c *Client) baseURLFor(p Provider) string {
	if p == ProviderClaude {
		return c.cfg.ClaudeBaseURL
	}
	return c.cfg.OpenAIBaseURL
}

// GenerateLayout runs the full request pipeline: validation, prompt
// assembly, token budgeting, the bounded retry loop and usage tracking.
// All failures come back as *Error; nothing panics across this boundary.
func (c *Client) GenerateLayout(ctx context.Context, userPrompt string, opts Options) (*Result, error) {
	model := opts.Model
	if model == "" {
		model = c.cfg.DefaultModel
	}

	// The provider is re-derived from the model on every call so a model
	// override also switches wire protocol.
	mc, ok := GetModel(model)
	if !ok {
		return nil, NewError(ErrInvalidModel, fmt.Sprintf("Unknown model %q.", model))
	}

	apiKey := c.apiKeyFor(mc.Provider)
	if apiKey == "" {
		return nil, NewError(ErrMissingAPIKey,
			fmt.Sprintf("No API key configured for provider %s.", mc.Provider))
	}

	if err := prompt.Validate(userPrompt); err != nil {
		if err == prompt.ErrTooShort {
			return nil, NewError(ErrPromptTooShort, "Prompt must be at least 10 characters.")
		}
		return nil, NewError(ErrPromptTooLong, "Prompt must be at most 1000 characters.")
	}

	analysis := prompt.Analyze(userPrompt)
	systemPrompt := prompt.BuildSystemPrompt(analysis, prompt.Options{
		Style:    opts.Style,
		Industry: opts.Industry,
		Audience: opts.Audience,
	})
	enhanced := prompt.Enhance(userPrompt, analysis)

	promptTokens := prompt.EstimateTokens(systemPrompt + enhanced)
	maxTokens := CalculateMaxTokens(model, promptTokens, 0)
	if maxTokens < minCompletionTokens {
		// Fail fast: no point sending a request the model cannot answer.
		return nil, NewError(ErrPromptTooLong,
			"Prompt leaves too little room for a response on this model. Shorten the prompt or pick a larger model.")
	}
	if opts.MaxTokens > 0 && opts.MaxTokens < maxTokens {
		maxTokens = opts.MaxTokens
	}

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = c.cfg.Temperature
	}

	cdc := codecFor(mc.Provider)
	payload, err := cdc.Body(request{
		Model:       model,
		System:      systemPrompt,
		User:        enhanced,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, NewError(ErrGenerationFailed, "Failed to build the provider request.")
	}

	content, usage, callErr := c.doWithRetry(ctx, cdc, apiKey, payload)

	usage.Cost = EstimateCost(model, usage.PromptTokens, usage.CompletionTokens)
	if c.tracker != nil {
		c.tracker.Track(ctx, TrackedCall{
			UserID:    opts.UserID,
			Prompt:    userPrompt,
			Response:  content,
			Model:     model,
			Usage:     usage,
			Succeeded: callErr == nil,
		})
	}

	if callErr != nil {
		return nil, callErr
	}

	return &Result{
		Content: content,
		Usage:   usage,
		Model:   model,
		Prompts: Prompts{System: systemPrompt, User: enhanced},
	}, nil
}

// backoffDelay computes the sleep before the next retry. Pure: the retry
// bound and timing are unit-testable without touching the clock.
// Retry-After from the provider wins over linear backoff.
func backoffDelay(attempt int, retryAfter, base time.Duration) time.Duration {
	if retryAfter > 0 {
		return retryAfter
	}
	return base * time.Duration(attempt)
}

// attemptOutcome classifies one HTTP attempt.
type attemptOutcome struct {
	content    string
	usage      Usage
	err        *Error
	retryable  bool
	retryAfter time.Duration
}

// doWithRetry is the bounded retry loop: at most maxRetries attempts,
// linear or header-driven backoff between retryable failures, immediate
// return on terminal ones. If every attempt fails it returns the last
// recorded error, falling back to max_retries_exceeded.
func (c *Client) doWithRetry(ctx context.Context, cdc codec, apiKey string, payload []byte) (string, Usage, *Error) {
	var lastErr *Error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		out := c.attempt(ctx, cdc, apiKey, payload)
		if out.err == nil {
			return out.content, out.usage, nil
		}
		if !out.retryable {
			return "", Usage{}, out.err
		}
		lastErr = out.err
		if attempt < maxRetries {
			delay := backoffDelay(attempt, out.retryAfter, retryDelay)
			slog.Debug("retrying provider request",
				"provider", cdc.Name(), "attempt", attempt, "delay", delay, "error", out.err.Code)
			c.sleep(delay)
		}
	}
	if lastErr == nil {
		lastErr = NewError(ErrMaxRetriesExceeded, "The AI provider did not respond after several attempts.")
	}
	return "", Usage{}, lastErr
}

// attempt issues one HTTP POST and classifies the outcome.
func (c *Client) attempt(ctx context.Context, cdc codec, apiKey string, payload []byte) attemptOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cdc.URL(c.baseURLFor(cdc.Name())), bytes.NewReader(payload))
	if err != nil {
		return attemptOutcome{err: NewError(ErrConnectionError, "Failed to build the provider request.")}
	}
	for k, v := range cdc.Headers(apiKey) {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No HTTP response at all: transport-level failure, retryable.
		logSecurityEvent("connection_error", cdc.Name(), 0)
		return attemptOutcome{
			err:       NewError(ErrConnectionError, "Could not reach the AI provider. Please try again."),
			retryable: true,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logSecurityEvent("connection_error", cdc.Name(), resp.StatusCode)
		return attemptOutcome{
			err:       NewError(ErrConnectionError, "Failed to read the provider response."),
			retryable: true,
		}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return classifySuccessBody(cdc, body)

	case isRetryableStatus(resp.StatusCode):
		logSecurityEvent("provider_throttle", cdc.Name(), resp.StatusCode)
		code := ErrServerError
		if resp.StatusCode == http.StatusTooManyRequests {
			code = ErrRateLimited
		}
		return attemptOutcome{
			err:        NewError(code, statusMessage(resp.StatusCode)),
			retryable:  true,
			retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}

	default:
		// Remaining 4xx: terminal, no retry.
		logSecurityEvent("client_error", cdc.Name(), resp.StatusCode)
		code := ErrAPIError
		if resp.StatusCode == http.StatusUnauthorized {
			code = ErrInvalidAPIKey
		}
		msg := errorMessageFromBody(body)
		if msg == "" {
			msg = statusMessage(resp.StatusCode)
		}
		return attemptOutcome{err: NewError(code, msg)}
	}
}

// classifySuccessBody handles 2xx responses: they may still carry an error
// object, and a well-formed success must yield extractable content.
func classifySuccessBody(cdc codec, body []byte) attemptOutcome {
	if apiErr := decodeAPIError(body); apiErr != nil {
		switch {
		case apiErr.Code == "context_length_exceeded":
			return attemptOutcome{err: NewError(ErrContextLengthExceeded,
				"Your prompt is too long for this model. Shorten it or pick a model with a larger context window.")}
		case apiErr.Type == "server_error" || apiErr.Type == "engine_error":
			return attemptOutcome{
				err:       NewError(ErrServerError, statusMessage(http.StatusInternalServerError)),
				retryable: true,
			}
		default:
			return attemptOutcome{err: NewError(ErrAPIError, "The AI provider rejected the request.")}
		}
	}

	content, usage, err := cdc.ExtractContent(body)
	if err != nil {
		return attemptOutcome{err: NewError(ErrInvalidResponse,
			"The AI provider returned an unexpected response format.")}
	}
	return attemptOutcome{content: content, usage: usage}
}

// isRetryableStatus reports whether an HTTP status is worth retrying.
func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// statusMessage maps HTTP statuses to user-facing defaults.
func statusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "Invalid API key. Check your provider credentials."
	case status == http.StatusTooManyRequests:
		return "Rate limit exceeded. Please try again shortly."
	case status >= 500:
		return "The AI provider returned a server error. Please try again."
	default:
		return "Unexpected response from the AI provider."
	}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// decodeAPIError returns the embedded error object of a response body, or
// nil if the body carries none.
func decodeAPIError(body []byte) *apiErrorBody {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Error
}

// errorMessageFromBody pulls the provider's human-readable error message
// out of a failure body, if present.
func errorMessageFromBody(body []byte) string {
	if apiErr := decodeAPIError(body); apiErr != nil {
		return apiErr.Message
	}
	return ""
}

// logSecurityEvent records abuse-relevant provider failures. Validation
// failures that never reach the network are deliberately not logged here.
func logSecurityEvent(kind string, provider Provider, status int) {
	slog.Warn("security event", "kind", kind, "provider", provider, "status", status)
}
