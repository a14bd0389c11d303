package models

import (
	"time"

	"github.com/google/uuid"
)

// Template is a saved block layout. Content holds serialized block-comment
// markup; Prompt records the prompt that produced it (empty for hand-built
// templates). UsageCount is incremented each time the template is read for
// insertion into a page.
type Template struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	Prompt     string    `json:"prompt"`
	IsPublic   bool      `json:"is_public"`
	UsageCount int       `json:"usage_count"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}
