package handlers

import (
	"net/http"
	"time"

	"layoutberg/internal/middleware"
)

// Usage returns the caller's daily usage rows for a date range, defaulting
// to the last 30 days, plus range totals.
func (a *API) Usage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromCtx(r.Context())

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)
	if v := r.URL.Query().Get("from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			from = parsed
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			to = parsed
		}
	}

	rows, err := a.usage.ListByUser(userID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	var generations, tokens int
	var cost float64
	for _, row := range rows {
		generations += row.GenerationsCount
		tokens += row.TokensUsed
		cost += row.Cost
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"days": rows,
		"totals": map[string]any{
			"generations": generations,
			"tokens":      tokens,
			"cost":        cost,
		},
	})
}

// History returns the caller's recent generation records.
func (a *API) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromCtx(r.Context())
	items, err := a.generations.ListByUser(userID, 50)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": items})
}
