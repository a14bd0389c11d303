package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"layoutberg/internal/variations"
)

// Seed populates the database with initial development data. It creates
// a public starter template for each predefined pattern if the templates
// table is empty.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM templates").Scan(&count); err != nil {
		return fmt.Errorf("seed check templates: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, name := range variations.PatternNames() {
		markup := variations.BuildPatternMarkup(name, "seed")
		_, err := db.Exec(`
			INSERT INTO templates (name, slug, content, category, is_public, created_by)
			VALUES ($1, $2, $3, $4, TRUE, $5)
		`, name+" starter", name+"-starter", markup, "starter", "system")
		if err != nil {
			return fmt.Errorf("seed insert template %s: %w", name, err)
		}
	}

	slog.Info("database seeded with starter templates",
		"count", len(variations.PatternNames()),
	)

	return nil
}
