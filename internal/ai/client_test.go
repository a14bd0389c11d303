package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const testPrompt = "Create a hero section with a button"

// newTestClient builds a client pointed at a local server with retry sleeps
// recorded instead of slept.
func newTestClient(baseURL string, opts ...ClientOption) (*Client, *[]time.Duration) {
	c := NewClient(Config{
		OpenAIKey:     "sk-test",
		ClaudeKey:     "sk-ant-test",
		OpenAIBaseURL: baseURL,
		ClaudeBaseURL: baseURL,
		DefaultModel:  "gpt-3.5-turbo",
		Temperature:   0.7,
	}, opts...)

	var delays []time.Duration
	c.sleep = func(d time.Duration) { delays = append(delays, d) }
	return c, &delays
}

// countingServer responds with each handler in sequence and counts hits.
func countingServer(t *testing.T, handlers ...http.HandlerFunc) (*httptest.Server, *int) {
	t.Helper()
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		i := hits
		hits++
		mu.Unlock()
		if i >= len(handlers) {
			i = len(handlers) - 1
		}
		handlers[i](w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func openAISuccess(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := openAIResponse{
			Choices: []openAIChoice{{Message: openAIMessage{Role: "assistant", Content: content}}},
			Usage:   openAIUsage{PromptTokens: 100, CompletionTokens: 200, TotalTokens: 300},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func statusReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestGenerateLayoutSuccess(t *testing.T) {
	srv, hits := countingServer(t, openAISuccess("<!-- wp:paragraph --><p>Hi</p><!-- /wp:paragraph -->"))
	c, _ := newTestClient(srv.URL)

	res, err := c.GenerateLayout(context.Background(), testPrompt, Options{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if *hits != 1 {
		t.Errorf("hits: got %d, want 1", *hits)
	}
	if res.Model != "gpt-3.5-turbo" {
		t.Errorf("model: got %q", res.Model)
	}
	if res.Usage.TotalTokens != 300 {
		t.Errorf("total tokens: got %d", res.Usage.TotalTokens)
	}
	if res.Usage.Cost == 0 {
		t.Error("cost not estimated")
	}
	if res.Prompts.System == "" || res.Prompts.User == "" {
		t.Error("prompts not recorded")
	}
}

func TestGenerateLayoutRetriesThenSucceeds(t *testing.T) {
	srv, hits := countingServer(t,
		statusReply(http.StatusServiceUnavailable, `{}`),
		statusReply(http.StatusServiceUnavailable, `{}`),
		openAISuccess("ok markup"),
	)
	c, delays := newTestClient(srv.URL)

	res, err := c.GenerateLayout(context.Background(), testPrompt, Options{})
	if err != nil {
		t.Fatalf("generate after retries: %v", err)
	}
	if res.Content != "ok markup" {
		t.Errorf("content: got %q", res.Content)
	}
	if *hits != 3 {
		t.Errorf("hits: got %d, want 3", *hits)
	}
	// Linear backoff: 2s after attempt 1, 4s after attempt 2.
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(*delays) != len(want) {
		t.Fatalf("delays: got %v, want %v", *delays, want)
	}
	for i := range want {
		if (*delays)[i] != want[i] {
			t.Errorf("delay %d: got %v, want %v", i, (*delays)[i], want[i])
		}
	}
}

func TestGenerateLayoutRetryBound(t *testing.T) {
	srv, hits := countingServer(t, statusReply(http.StatusServiceUnavailable, `{}`))
	c, _ := newTestClient(srv.URL)

	_, err := c.GenerateLayout(context.Background(), testPrompt, Options{})
	if err == nil {
		t.Fatal("expected failure on persistent 503")
	}
	if *hits != maxRetries {
		t.Errorf("hits: got %d, want %d", *hits, maxRetries)
	}
	if e := AsError(err); e.Code != ErrServerError {
		t.Errorf("code: got %q, want %q", e.Code, ErrServerError)
	}
}

func TestGenerateLayoutNoRetryOn401(t *testing.T) {
	srv, hits := countingServer(t,
		statusReply(http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided"}}`))
	c, delays := newTestClient(srv.URL)

	_, err := c.GenerateLayout(context.Background(), testPrompt, Options{})
	e := AsError(err)
	if e.Code != ErrInvalidAPIKey {
		t.Errorf("code: got %q, want %q", e.Code, ErrInvalidAPIKey)
	}
	if e.Message != "Incorrect API key provided" {
		t.Errorf("message not taken from body: got %q", e.Message)
	}
	if *hits != 1 {
		t.Errorf("hits: got %d, want 1 (no retry)", *hits)
	}
	if len(*delays) != 0 {
		t.Errorf("delays: got %v, want none", *delays)
	}
}

func TestGenerateLayoutHonorsRetryAfter(t *testing.T) {
	srv, _ := countingServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{}`))
		},
		openAISuccess("ok"),
	)
	c, delays := newTestClient(srv.URL)

	if _, err := c.GenerateLayout(context.Background(), testPrompt, Options{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(*delays) != 1 || (*delays)[0] != 7*time.Second {
		t.Errorf("delays: got %v, want [7s]", *delays)
	}
}

func TestGenerateLayoutEmbeddedErrorInSuccessBody(t *testing.T) {
	srv, hits := countingServer(t,
		statusReply(http.StatusOK, `{"error":{"message":"too long","code":"context_length_exceeded"}}`))
	c, _ := newTestClient(srv.URL)

	_, err := c.GenerateLayout(context.Background(), testPrompt, Options{})
	if e := AsError(err); e.Code != ErrContextLengthExceeded {
		t.Errorf("code: got %q, want %q", e.Code, ErrContextLengthExceeded)
	}
	if *hits != 1 {
		t.Errorf("hits: got %d, want 1 (terminal)", *hits)
	}
}

func TestGenerateLayoutRetryableEmbeddedServerError(t *testing.T) {
	srv, hits := countingServer(t,
		statusReply(http.StatusOK, `{"error":{"message":"engine busy","type":"server_error"}}`),
		openAISuccess("ok"),
	)
	c, _ := newTestClient(srv.URL)

	if _, err := c.GenerateLayout(context.Background(), testPrompt, Options{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if *hits != 2 {
		t.Errorf("hits: got %d, want 2", *hits)
	}
}

func TestGenerateLayoutInvalidResponseFormat(t *testing.T) {
	srv, _ := countingServer(t, statusReply(http.StatusOK, `{"choices":[]}`))
	c, _ := newTestClient(srv.URL)

	_, err := c.GenerateLayout(context.Background(), testPrompt, Options{})
	if e := AsError(err); e.Code != ErrInvalidResponse {
		t.Errorf("code: got %q, want %q", e.Code, ErrInvalidResponse)
	}
}

func TestGenerateLayoutFailsBeforeHTTP(t *testing.T) {
	srv, hits := countingServer(t, openAISuccess("never"))

	tests := []struct {
		name   string
		prompt string
		opts   Options
		cfg    func(*Client)
		code   string
	}{
		{"unknown model", testPrompt, Options{Model: "gpt-99"}, nil, ErrInvalidModel},
		{"short prompt", "too short", Options{}, nil, ErrPromptTooShort},
		{"long prompt", string(make([]byte, 1001)), Options{}, nil, ErrPromptTooLong},
		{"missing key", testPrompt, Options{}, func(c *Client) { c.cfg.OpenAIKey = "" }, ErrMissingAPIKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(srv.URL)
			if tc.cfg != nil {
				tc.cfg(c)
			}
			_, err := c.GenerateLayout(context.Background(), tc.prompt, tc.opts)
			if e := AsError(err); e.Code != tc.code {
				t.Errorf("code: got %q, want %q", e.Code, tc.code)
			}
		})
	}

	if *hits != 0 {
		t.Errorf("hits: got %d, want 0 (validation happens before HTTP)", *hits)
	}
}

func TestGenerateLayoutClaudeModelSwitchesProtocol(t *testing.T) {
	var gotPath, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("x-api-key")
		resp := claudeResponse{
			Content: []claudeContentBlock{{Type: "text", Text: "claude markup"}},
			Usage:   claudeUsage{InputTokens: 10, OutputTokens: 20},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	res, err := c.GenerateLayout(context.Background(), testPrompt, Options{Model: "claude-3-haiku-20240307"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gotPath != "/v1/messages" {
		t.Errorf("path: got %q, want /v1/messages", gotPath)
	}
	if gotAPIKey != "sk-ant-test" {
		t.Errorf("api key header: got %q", gotAPIKey)
	}
	if res.Content != "claude markup" {
		t.Errorf("content: got %q", res.Content)
	}
}

// recordingTracker captures tracked calls for assertions.
type recordingTracker struct {
	mu    sync.Mutex
	calls []TrackedCall
}

func (rt *recordingTracker) Track(ctx context.Context, call TrackedCall) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.calls = append(rt.calls, call)
}

func TestGenerateLayoutTracksSuccessAndFailure(t *testing.T) {
	srv, _ := countingServer(t,
		openAISuccess("markup"),
		statusReply(http.StatusNotFound, `{"error":{"message":"nope"}}`),
	)

	rt := &recordingTracker{}
	c, _ := newTestClient(srv.URL, WithTracker(rt))

	if _, err := c.GenerateLayout(context.Background(), testPrompt, Options{UserID: "u1"}); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if _, err := c.GenerateLayout(context.Background(), testPrompt, Options{UserID: "u1"}); err == nil {
		t.Fatal("second generate should fail")
	}

	if len(rt.calls) != 2 {
		t.Fatalf("tracked calls: got %d, want 2", len(rt.calls))
	}
	if !rt.calls[0].Succeeded || rt.calls[0].UserID != "u1" || rt.calls[0].Usage.TotalTokens != 300 {
		t.Errorf("success call: got %+v", rt.calls[0])
	}
	if rt.calls[1].Succeeded {
		t.Error("failure call marked succeeded")
	}
}

func TestGenerateLayoutValidationNotTracked(t *testing.T) {
	rt := &recordingTracker{}
	c, _ := newTestClient("http://localhost:1", WithTracker(rt))

	if _, err := c.GenerateLayout(context.Background(), "short", Options{}); err == nil {
		t.Fatal("expected validation failure")
	}
	if len(rt.calls) != 0 {
		t.Errorf("tracked calls: got %d, want 0", len(rt.calls))
	}
}

func TestBackoffDelay(t *testing.T) {
	if got := backoffDelay(1, 0, retryDelay); got != 2*time.Second {
		t.Errorf("attempt 1: got %v, want 2s", got)
	}
	if got := backoffDelay(2, 0, retryDelay); got != 4*time.Second {
		t.Errorf("attempt 2: got %v, want 4s", got)
	}
	if got := backoffDelay(1, 9*time.Second, retryDelay); got != 9*time.Second {
		t.Errorf("retry-after: got %v, want 9s", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Second},
		{"0", 0},
		{"-3", 0},
		{"soon", 0},
	}
	for _, tc := range tests {
		if got := parseRetryAfter(tc.in); got != tc.want {
			t.Errorf("parseRetryAfter(%q): got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsRetryableStatus(t *testing.T) {
	for _, status := range []int{429, 500, 502, 503, 504} {
		if !isRetryableStatus(status) {
			t.Errorf("%d should be retryable", status)
		}
	}
	for _, status := range []int{200, 400, 401, 403, 404, 422} {
		if isRetryableStatus(status) {
			t.Errorf("%d should not be retryable", status)
		}
	}
}

func TestGenerateLayoutMaxTokensOverride(t *testing.T) {
	var body openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		openAISuccess("ok")(w, r)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	if _, err := c.GenerateLayout(context.Background(), testPrompt, Options{MaxTokens: 600}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if body.MaxTokens != 600 {
		t.Errorf("max_tokens: got %d, want the 600 override", body.MaxTokens)
	}
}
