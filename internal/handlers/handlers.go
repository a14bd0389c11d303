// Package handlers implements the JSON API boundary. It translates typed
// pipeline errors into HTTP responses; no raw provider errors or stack
// traces reach clients.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"layoutberg/internal/ai"
	"layoutberg/internal/cache"
	"layoutberg/internal/generator"
	"layoutberg/internal/store"
)

// API bundles the dependencies of all endpoints.
type API struct {
	generator   *generator.Generator
	client      *ai.Client
	templates   *store.TemplateStore
	generations *store.GenerationStore
	usage       *store.UsageStore
	cache       *cache.Manager
}

// New creates the API handler set.
func New(
	gen *generator.Generator,
	client *ai.Client,
	templates *store.TemplateStore,
	generations *store.GenerationStore,
	usage *store.UsageStore,
	cacheManager *cache.Manager,
) *API {
	return &API{
		generator:   gen,
		client:      client,
		templates:   templates,
		generations: generations,
		usage:       usage,
		cache:       cacheManager,
	}
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error *ai.Error `json:"error"`
}

// writeError maps a pipeline error to an HTTP status and writes it.
func writeError(w http.ResponseWriter, err error) {
	e := ai.AsError(err)
	writeJSON(w, statusFor(e.Code), errorBody{Error: e})
}

// statusFor maps error codes to HTTP statuses: input and content errors
// are the client's fault, provider failures are upstream faults.
func statusFor(code string) int {
	switch code {
	case ai.ErrInvalidAPIKey:
		return http.StatusUnauthorized
	case ai.ErrRateLimited:
		return http.StatusTooManyRequests
	case ai.ErrServerError, ai.ErrConnectionError, ai.ErrMaxRetriesExceeded,
		ai.ErrInvalidResponse, ai.ErrAPIError:
		return http.StatusBadGateway
	case ai.ErrGenerationFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Health answers liveness probes.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// FlushCache clears every cache tier.
func (a *API) FlushCache(w http.ResponseWriter, r *http.Request) {
	a.cache.Flush(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}
