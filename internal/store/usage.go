package store

import (
	"database/sql"
	"fmt"
	"time"

	"layoutberg/internal/models"
)

// UsageStore maintains per-user daily usage aggregates.
type UsageStore struct {
	db *sql.DB
}

// NewUsageStore creates a new UsageStore with the given database connection.
func NewUsageStore(db *sql.DB) *UsageStore {
	return &UsageStore{db: db}
}

// Increment adds one generation with the given token/cost totals to the
// user's row for the given day, inserting the row if it does not exist.
// The UNIQUE (user_id, day) constraint makes this safe under concurrent
// first-generations-of-the-day.
func (s *UsageStore) Increment(userID string, day time.Time, tokens int, cost float64) error {
	_, err := s.db.Exec(`
		INSERT INTO usage_daily (user_id, day, generations_count, tokens_used, cost)
		VALUES ($1, $2, 1, $3, $4)
		ON CONFLICT ON CONSTRAINT usage_daily_user_day_key DO UPDATE SET
			generations_count = usage_daily.generations_count + 1,
			tokens_used = usage_daily.tokens_used + EXCLUDED.tokens_used,
			cost = usage_daily.cost + EXCLUDED.cost
	`, userID, day.Format("2006-01-02"), tokens, cost)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	return nil
}

// FindByUserAndDay returns the usage row for one user and day.
// Returns nil if the user has no activity that day.
func (s *UsageStore) FindByUserAndDay(userID string, day time.Time) (*models.DailyUsage, error) {
	u := &models.DailyUsage{}
	err := s.db.QueryRow(`
		SELECT user_id, day, generations_count, tokens_used, cost
		FROM usage_daily
		WHERE user_id = $1 AND day = $2
	`, userID, day.Format("2006-01-02")).Scan(
		&u.UserID, &u.Day, &u.GenerationsCount, &u.TokensUsed, &u.Cost,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find usage: %w", err)
	}
	return u, nil
}

// ListByUser returns a user's daily usage rows between from and to inclusive,
// oldest first. Used by the usage/analytics endpoint.
func (s *UsageStore) ListByUser(userID string, from, to time.Time) ([]models.DailyUsage, error) {
	rows, err := s.db.Query(`
		SELECT user_id, day, generations_count, tokens_used, cost
		FROM usage_daily
		WHERE user_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY day ASC
	`, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	defer rows.Close()

	var items []models.DailyUsage
	for rows.Next() {
		var u models.DailyUsage
		if err := rows.Scan(&u.UserID, &u.Day, &u.GenerationsCount, &u.TokensUsed, &u.Cost); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		items = append(items, u)
	}
	return items, rows.Err()
}
