package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Weight returns the numeric scheduling weight for a priority.
// Unknown values weigh the same as medium.
func (p TaskPriority) Weight() int {
	switch p {
	case TaskPriorityHigh:
		return 3
	case TaskPriorityLow:
		return 1
	default:
		return 2
	}
}

// EnergyLevel represents the energy a task demands (or a block requires)
type EnergyLevel string

const (
	EnergyLevelLow    EnergyLevel = "low"
	EnergyLevelMedium EnergyLevel = "medium"
	EnergyLevelHigh   EnergyLevel = "high"
)

// Task represents a schedulable unit of work owned by a user
type Task struct {
	ID                uuid.UUID    `json:"id"`
	UserID            uuid.UUID    `json:"user_id"`
	Title             string       `json:"title"`
	Priority          TaskPriority `json:"priority"`
	Complexity        int          `json:"complexity"` // 1-5 subjective difficulty
	EstimatedDuration *int         `json:"estimated_duration,omitempty"` // minutes
	Context           string       `json:"context,omitempty"` // e.g. "administrative", "learning"
	EnergyLevel       EnergyLevel  `json:"energy_level"`
	Completed         bool         `json:"completed"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty"`
}

// EffectiveComplexity returns the complexity used for prioritization,
// defaulting to 3 when the stored value is out of the 1-5 range.
func (t *Task) EffectiveComplexity() int {
	if t.Complexity < 1 || t.Complexity > 5 {
		return 3
	}
	return t.Complexity
}
