package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationStatus marks whether an API call produced usable output.
type GenerationStatus string

const (
	GenerationStatusCompleted GenerationStatus = "completed"
	GenerationStatusFailed    GenerationStatus = "failed"
)

// Generation is the persisted record of a single LLM API call. One row is
// inserted per completed or failed call; rows are immutable after insert
// except for status corrections.
type Generation struct {
	ID         uuid.UUID        `json:"id"`
	UserID     string           `json:"user_id"`
	Prompt     string           `json:"prompt"`
	Response   string           `json:"response"`
	Model      string           `json:"model"`
	TokensUsed int              `json:"tokens_used"`
	Status     GenerationStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}
