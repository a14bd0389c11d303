package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"layoutberg/internal/models"
)

// TemplateStore handles persistence of saved block layouts.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Create inserts a new template and returns it with the generated ID.
func (s *TemplateStore) Create(t *models.Template) (*models.Template, error) {
	result := &models.Template{}
	var tags string
	err := s.db.QueryRow(`
		INSERT INTO templates (name, slug, content, category, tags, prompt, is_public, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, slug, content, category, tags, prompt,
		          is_public, usage_count, created_by, created_at
	`, t.Name, t.Slug, t.Content, t.Category, joinTags(t.Tags), t.Prompt, t.IsPublic, t.CreatedBy,
	).Scan(
		&result.ID, &result.Name, &result.Slug, &result.Content, &result.Category,
		&tags, &result.Prompt, &result.IsPublic, &result.UsageCount,
		&result.CreatedBy, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	result.Tags = splitTags(tags)
	return result, nil
}

// FindByID retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.Template, error) {
	t := &models.Template{}
	var tags string
	err := s.db.QueryRow(`
		SELECT id, name, slug, content, category, tags, prompt,
		       is_public, usage_count, created_by, created_at
		FROM templates WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Content, &t.Category,
		&tags, &t.Prompt, &t.IsPublic, &t.UsageCount, &t.CreatedBy, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	t.Tags = splitTags(tags)
	return t, nil
}

// FindBySlug retrieves a template by its unique slug. Returns nil if not found.
func (s *TemplateStore) FindBySlug(slug string) (*models.Template, error) {
	t := &models.Template{}
	var tags string
	err := s.db.QueryRow(`
		SELECT id, name, slug, content, category, tags, prompt,
		       is_public, usage_count, created_by, created_at
		FROM templates WHERE slug = $1
	`, slug).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Content, &t.Category,
		&tags, &t.Prompt, &t.IsPublic, &t.UsageCount, &t.CreatedBy, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by slug: %w", err)
	}
	t.Tags = splitTags(tags)
	return t, nil
}

// ListVisible returns templates visible to the given user: their own plus
// public ones, newest first.
func (s *TemplateStore) ListVisible(userID string) ([]models.Template, error) {
	rows, err := s.db.Query(`
		SELECT id, name, slug, content, category, tags, prompt,
		       is_public, usage_count, created_by, created_at
		FROM templates
		WHERE created_by = $1 OR is_public = TRUE
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var items []models.Template
	for rows.Next() {
		var t models.Template
		var tags string
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Slug, &t.Content, &t.Category,
			&tags, &t.Prompt, &t.IsPublic, &t.UsageCount, &t.CreatedBy, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.Tags = splitTags(tags)
		items = append(items, t)
	}
	return items, rows.Err()
}

// Update modifies a template's mutable fields.
func (s *TemplateStore) Update(t *models.Template) error {
	_, err := s.db.Exec(`
		UPDATE templates SET
			name = $1, content = $2, category = $3, tags = $4, is_public = $5
		WHERE id = $6
	`, t.Name, t.Content, t.Category, joinTags(t.Tags), t.IsPublic, t.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// Delete removes a template by ID.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// IncrementUsage bumps the usage counter. Called on each read-for-use.
func (s *TemplateStore) IncrementUsage(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE templates SET usage_count = usage_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment template usage: %w", err)
	}
	return nil
}

// Tags are stored comma-joined in a single TEXT column.

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
