package models

import "time"

// DailyUsage aggregates a user's generation activity for one calendar day.
// One row per (user, day), maintained via upsert on every successful
// generation. The storage layer enforces UNIQUE (user_id, day) so two
// concurrent first-generations-of-the-day cannot double-insert.
type DailyUsage struct {
	UserID           string    `json:"user_id"`
	Day              time.Time `json:"day"`
	GenerationsCount int       `json:"generations_count"`
	TokensUsed       int       `json:"tokens_used"`
	Cost             float64   `json:"cost"`
}
