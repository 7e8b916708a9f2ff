package models

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity tracks when a user last touched the API. Nightly schedule
// optimization skips users whose optimization is paused for inactivity.
type UserActivity struct {
	UserID             uuid.UUID `json:"user_id"`
	LastAPIInteraction time.Time `json:"last_api_interaction"`
	OptimizationPaused bool      `json:"optimization_paused"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
