package handlers

import (
	"encoding/json"
	"net/http"

	"layoutberg/internal/ai"
	"layoutberg/internal/middleware"
	"layoutberg/internal/sanitize"
	"layoutberg/internal/variations"
)

// generateRequest is the POST /api/v1/generate payload.
type generateRequest struct {
	Prompt  string     `json:"prompt"`
	Options ai.Options `json:"options"`
}

// Generate runs the full layout generation pipeline for a prompt.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ai.NewError("invalid_request", "Request body must be valid JSON."))
		return
	}

	// The REST path sanitizes with its own (wider) bounds; the client
	// pipeline applies its stricter validator afterwards.
	cleaned, err := sanitize.Clean(req.Prompt)
	if err != nil {
		writeError(w, sanitizeError(err))
		return
	}

	req.Options.UserID = middleware.UserIDFromCtx(r.Context())

	resp, err := a.generator.Generate(r.Context(), cleaned, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// sanitizeError maps sanitizer failures onto the shared error taxonomy.
func sanitizeError(err error) *ai.Error {
	switch err {
	case sanitize.ErrTooShort:
		return ai.NewError(ai.ErrPromptTooShort, "Prompt must be at least 10 characters.")
	case sanitize.ErrTooLong:
		return ai.NewError(ai.ErrPromptTooLong, "Prompt must be at most 2000 characters.")
	case sanitize.ErrBlocked:
		return ai.NewError("blocked_prompt", "Prompt contains content that is not allowed.")
	case sanitize.ErrRepetitive:
		return ai.NewError("repetitive_prompt", "Prompt is excessively repetitive.")
	default:
		return ai.AsError(err)
	}
}

// validateKeyRequest is the POST /api/v1/validate-key payload.
type validateKeyRequest struct {
	Key      string `json:"key"`
	Provider string `json:"provider"`
}

// ValidateKey checks provider credentials without running a generation.
func (a *API) ValidateKey(w http.ResponseWriter, r *http.Request) {
	var req validateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ai.NewError("invalid_request", "Request body must be valid JSON."))
		return
	}

	provider := ai.Provider(req.Provider)
	if provider != ai.ProviderOpenAI && provider != ai.ProviderClaude {
		writeError(w, ai.NewError("invalid_provider", "Provider must be \"openai\" or \"claude\"."))
		return
	}

	if err := ai.ValidateAPIKey(r.Context(), req.Key, provider, ""); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// modelInfo is one row of the models listing.
type modelInfo struct {
	ID            string  `json:"id"`
	Provider      string  `json:"provider"`
	ContextWindow int     `json:"context_window"`
	MaxOutput     int     `json:"max_output"`
	CostPer1KIn   float64 `json:"cost_per_1k_input"`
	CostPer1KOut  float64 `json:"cost_per_1k_output"`
}

// Models lists every model the service can route to.
func (a *API) Models(w http.ResponseWriter, r *http.Request) {
	var out []modelInfo
	for _, id := range ai.ModelIDs() {
		cfg, _ := ai.GetModel(id)
		out = append(out, modelInfo{
			ID:            id,
			Provider:      string(cfg.Provider),
			ContextWindow: cfg.ContextWindow,
			MaxOutput:     cfg.MaxOutput,
			CostPer1KIn:   cfg.CostPer1KIn,
			CostPer1KOut:  cfg.CostPer1KOut,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": out})
}

// Patterns returns a predefined pattern without an AI call. The seed query
// parameter varies placeholder content deterministically.
func (a *API) Patterns(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusOK, map[string]any{"patterns": variations.PatternNames()})
		return
	}

	seed := r.URL.Query().Get("seed")
	markup := variations.BuildPatternMarkup(name, seed)
	if markup == "" {
		writeError(w, ai.NewError("unknown_pattern", "No such pattern."))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name, "content": markup})
}
