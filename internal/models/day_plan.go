package models

import (
	"time"

	"github.com/google/uuid"
)

// DayPlan is a persisted schedule snapshot: one per user per civil day.
// Blocks are stored as JSONB; a new generation for the same day replaces the
// previous plan wholesale.
type DayPlan struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Date      time.Time     `json:"date"` // midnight, local to the request
	Style     PlanStyle     `json:"style"`
	Blocks    []TimeBlock   `json:"blocks"`
	Stats     ScheduleStats `json:"stats"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
