package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"layoutberg/internal/ai"
	"layoutberg/internal/middleware"
	"layoutberg/internal/models"
	"layoutberg/internal/slug"
)

// templateRequest is the create/update payload for templates.
type templateRequest struct {
	Name     string   `json:"name"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Prompt   string   `json:"prompt"`
	IsPublic bool     `json:"is_public"`
}

// ListTemplates returns the caller's templates plus public ones.
func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromCtx(r.Context())
	items, err := a.templates.ListVisible(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": items})
}

// CreateTemplate saves a layout as a reusable template. The slug is
// derived from the name and uniquified against existing templates.
func (a *API) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ai.NewError("invalid_request", "Request body must be valid JSON."))
		return
	}
	if req.Name == "" || req.Content == "" {
		writeError(w, ai.NewError("invalid_request", "Template name and content are required."))
		return
	}

	userID := middleware.UserIDFromCtx(r.Context())
	uniqueSlug := slug.MakeUnique(req.Name, func(candidate string) bool {
		existing, err := a.templates.FindBySlug(candidate)
		return err == nil && existing != nil
	})

	category := req.Category
	if category == "" {
		category = "general"
	}

	created, err := a.templates.Create(&models.Template{
		Name:      req.Name,
		Slug:      uniqueSlug,
		Content:   req.Content,
		Category:  category,
		Tags:      req.Tags,
		Prompt:    req.Prompt,
		IsPublic:  req.IsPublic,
		CreatedBy: userID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetTemplate returns a single template the caller may see.
func (a *API) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.loadVisibleTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// UseTemplate returns a template's content for insertion and bumps its
// usage counter.
func (a *API) UseTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.loadVisibleTemplate(w, r)
	if !ok {
		return
	}
	if err := a.templates.IncrementUsage(t.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": t.Content})
}

// UpdateTemplate modifies a template. Owner only.
func (a *API) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.loadOwnedTemplate(w, r)
	if !ok {
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ai.NewError("invalid_request", "Request body must be valid JSON."))
		return
	}

	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Content != "" {
		t.Content = req.Content
	}
	if req.Category != "" {
		t.Category = req.Category
	}
	if req.Tags != nil {
		t.Tags = req.Tags
	}
	t.IsPublic = req.IsPublic

	if err := a.templates.Update(t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTemplate removes a template. Owner only.
func (a *API) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.loadOwnedTemplate(w, r)
	if !ok {
		return
	}
	if err := a.templates.Delete(t.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadVisibleTemplate fetches the {id} template if the caller owns it or
// it is public. Writes the error response on failure.
func (a *API) loadVisibleTemplate(w http.ResponseWriter, r *http.Request) (*models.Template, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, ai.NewError("invalid_request", "Template id must be a UUID."))
		return nil, false
	}
	t, err := a.templates.FindByID(id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	userID := middleware.UserIDFromCtx(r.Context())
	if t == nil || (!t.IsPublic && t.CreatedBy != userID) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: ai.NewError("not_found", "Template not found.")})
		return nil, false
	}
	return t, true
}

// loadOwnedTemplate is loadVisibleTemplate restricted to the owner.
func (a *API) loadOwnedTemplate(w http.ResponseWriter, r *http.Request) (*models.Template, bool) {
	t, ok := a.loadVisibleTemplate(w, r)
	if !ok {
		return nil, false
	}
	if t.CreatedBy != middleware.UserIDFromCtx(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorBody{Error: ai.NewError("forbidden", "Only the owner can modify a template.")})
		return nil, false
	}
	return t, true
}
