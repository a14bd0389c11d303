// Package store contains the database access layer. Each store wraps a
// *sql.DB and exposes typed operations for one table.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"layoutberg/internal/models"
)

// GenerationStore handles persistence of generation records.
type GenerationStore struct {
	db *sql.DB
}

// NewGenerationStore creates a new GenerationStore with the given database connection.
func NewGenerationStore(db *sql.DB) *GenerationStore {
	return &GenerationStore{db: db}
}

// Create inserts a new generation record and returns it with the generated
// ID and timestamp. Records are written once per API call, success or failure.
func (s *GenerationStore) Create(g *models.Generation) (*models.Generation, error) {
	result := &models.Generation{}
	err := s.db.QueryRow(`
		INSERT INTO generations (user_id, prompt, response, model, tokens_used, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, prompt, response, model, tokens_used, status, created_at
	`, g.UserID, g.Prompt, g.Response, g.Model, g.TokensUsed, g.Status,
	).Scan(
		&result.ID, &result.UserID, &result.Prompt, &result.Response,
		&result.Model, &result.TokensUsed, &result.Status, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create generation: %w", err)
	}
	return result, nil
}

// FindByID retrieves a generation record by its UUID. Returns nil if not found.
func (s *GenerationStore) FindByID(id uuid.UUID) (*models.Generation, error) {
	g := &models.Generation{}
	err := s.db.QueryRow(`
		SELECT id, user_id, prompt, response, model, tokens_used, status, created_at
		FROM generations WHERE id = $1
	`, id).Scan(
		&g.ID, &g.UserID, &g.Prompt, &g.Response,
		&g.Model, &g.TokensUsed, &g.Status, &g.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find generation by id: %w", err)
	}
	return g, nil
}

// ListByUser returns the most recent generation records for a user,
// newest first, up to limit rows.
func (s *GenerationStore) ListByUser(userID string, limit int) ([]models.Generation, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, prompt, response, model, tokens_used, status, created_at
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var items []models.Generation
	for rows.Next() {
		var g models.Generation
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Prompt, &g.Response,
			&g.Model, &g.TokensUsed, &g.Status, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// MarkFailed corrects a record's status to failed. The only mutation
// permitted after insert.
func (s *GenerationStore) MarkFailed(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE generations SET status = 'failed' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark generation failed: %w", err)
	}
	return nil
}
