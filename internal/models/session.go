package models

import (
	"time"

	"github.com/google/uuid"
)

// FocusSession is a tracked span of focused work. Completed sessions with a
// focus quality feed the history-based schedule optimizer.
type FocusSession struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	TaskID       *uuid.UUID `json:"task_id,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	FocusQuality *int       `json:"focus_quality,omitempty"` // 1-5, set when the session is stopped
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// HasQuality reports whether the session carries usable focus-quality data.
func (s *FocusSession) HasQuality() bool {
	return s.FocusQuality != nil && *s.FocusQuality >= 1 && *s.FocusQuality <= 5
}
