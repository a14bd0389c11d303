// Package router tests verify the routing configuration, the public
// health endpoint and the auth boundary around /api/v1.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"layoutberg/internal/cache"
	"layoutberg/internal/generator"
	"layoutberg/internal/handlers"
	"layoutberg/internal/middleware"
)

func newTestRouter(t *testing.T, tokenHash string) http.Handler {
	t.Helper()
	gen := generator.New(nil, cache.NewManager(time.Minute), nil)
	api := handlers.New(gen, nil, nil, nil, nil, cache.NewManager(time.Minute))
	limiter := middleware.NewRateLimiter(100, time.Minute)
	t.Cleanup(limiter.Stop)
	return New(api, tokenHash, limiter)
}

func TestHealthEndpointPublic(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("token"), bcrypt.MinCost)
	r := newTestRouter(t, string(hash))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q", body["status"])
	}
}

func TestAPIRequiresToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("token"), bcrypt.MinCost)
	r := newTestRouter(t, string(hash))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/models", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", w.Code)
	}

	authed := httptest.NewRequest("GET", "/api/v1/models", nil)
	authed.Header.Set("Authorization", "Bearer token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authed)
	if w.Code != http.StatusOK {
		t.Errorf("with token: got %d, want 200", w.Code)
	}
}

func TestGenerateRateLimited(t *testing.T) {
	gen := generator.New(nil, cache.NewManager(time.Minute), nil)
	api := handlers.New(gen, nil, nil, nil, nil, cache.NewManager(time.Minute))
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	r := New(api, "", limiter)

	// First request consumes the window; body is invalid JSON so the
	// handler fails fast without touching the client.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/generate", nil))
	if w.Code == http.StatusTooManyRequests {
		t.Fatalf("first request already limited")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/generate", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}
