package store

import (
	"context"
	"log/slog"
	"time"

	"layoutberg/internal/ai"
	"layoutberg/internal/models"
)

// Tracker persists the outcome of every API call: one generations row per
// call, plus a daily usage upsert for successful ones. It implements
// ai.UsageTracker. Tracking errors are logged and swallowed so persistence
// hiccups never fail a generation.
type Tracker struct {
	generations *GenerationStore
	usage       *UsageStore
}

// NewTracker creates a usage tracker over the two stores.
func NewTracker(generations *GenerationStore, usage *UsageStore) *Tracker {
	return &Tracker{generations: generations, usage: usage}
}

// Track records a completed or failed API call.
func (t *Tracker) Track(ctx context.Context, call ai.TrackedCall) {
	status := models.GenerationStatusCompleted
	if !call.Succeeded {
		status = models.GenerationStatusFailed
	}

	_, err := t.generations.Create(&models.Generation{
		UserID:     call.UserID,
		Prompt:     call.Prompt,
		Response:   call.Response,
		Model:      call.Model,
		TokensUsed: call.Usage.TotalTokens,
		Status:     status,
	})
	if err != nil {
		slog.Error("failed to record generation", "error", err)
	}

	if !call.Succeeded {
		return
	}

	day := time.Now().UTC()
	if err := t.usage.Increment(call.UserID, day, call.Usage.TotalTokens, call.Usage.Cost); err != nil {
		slog.Error("failed to record usage", "error", err)
	}
}
