package scheduler

import (
	"time"

	"github.com/flowday/flowday-api/internal/models"
	"github.com/google/uuid"
)

// BlockSuggestion is a user-submitted edit to a single block. Absent fields
// leave the corresponding block fields untouched. Feedback is accepted for
// the caller to log but is never stored on the block.
type BlockSuggestion struct {
	NewTime     *time.Time           `json:"new_time,omitempty"`
	NewDuration *int                 `json:"new_duration,omitempty"` // minutes
	NewPriority *models.TaskPriority `json:"new_priority,omitempty"`
	Feedback    string               `json:"feedback,omitempty"`
}

// ApplySuggestion returns a new schedule with the targeted block updated.
// A move via NewTime preserves the block's duration; NewDuration sets the
// duration absolutely, so reapplying the same suggestion is idempotent.
// Direct user input is treated as higher-confidence: the block is marked
// user-modified and its confidence is raised by 0.1, clamped to 1.0.
//
// An unknown blockID is a no-op, not an error: the schedule is returned
// unchanged. Moves are deliberately not overlap-validated.
func ApplySuggestion(blocks []models.TimeBlock, blockID uuid.UUID, sug BlockSuggestion) []models.TimeBlock {
	updated := make([]models.TimeBlock, len(blocks))
	copy(updated, blocks)

	for i := range updated {
		if updated[i].ID != blockID {
			continue
		}
		b := updated[i]

		if sug.NewTime != nil {
			length := b.EndTime.Sub(b.StartTime)
			b.StartTime = *sug.NewTime
			b.EndTime = b.StartTime.Add(length)
		}
		if sug.NewDuration != nil {
			b.Duration = *sug.NewDuration
			b.EndTime = b.StartTime.Add(time.Duration(*sug.NewDuration) * time.Minute)
		}
		if sug.NewPriority != nil {
			priority := *sug.NewPriority
			b.UserPriority = &priority
		}

		b.UserModified = true
		b.Confidence = clampConfidence(b.Confidence + 0.1)

		updated[i] = b
		break
	}

	return updated
}
