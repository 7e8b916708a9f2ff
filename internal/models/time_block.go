package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockType categorizes what a time block is for
type BlockType string

const (
	BlockTypeDeepWork BlockType = "deep-work"
	BlockTypeMeetings BlockType = "meetings"
	BlockTypeAdmin    BlockType = "admin"
	BlockTypeBreak    BlockType = "break"
	BlockTypeLearning BlockType = "learning"
)

// Flexibility describes how movable a block is
type Flexibility string

const (
	FlexibilityFixed    Flexibility = "fixed"
	FlexibilityFlexible Flexibility = "flexible"
	FlexibilityMoveable Flexibility = "moveable"
)

// PlanStyle is the user's scheduling style preference. It is accepted and
// threaded through generation but does not currently alter allocation math.
type PlanStyle string

const (
	PlanStyleBalanced PlanStyle = "balanced"
	PlanStyleIntense  PlanStyle = "intense"
	PlanStyleRelaxed  PlanStyle = "relaxed"
)

// TimeBlock is a single scheduled span in a day plan. Blocks are value
// objects: the scheduler never mutates a block in place, it returns new
// slices with updated copies.
type TimeBlock struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	TaskIDs        []uuid.UUID   `json:"task_ids"`
	BlockType      BlockType     `json:"block_type"`
	EnergyRequired EnergyLevel   `json:"energy_required"`
	Flexibility    Flexibility   `json:"flexibility"`
	AIGenerated    bool          `json:"ai_generated"`
	Duration       int           `json:"duration"` // minutes; always EndTime - StartTime
	Confidence     float64       `json:"confidence"` // [0, 1]
	UserModified   bool          `json:"user_modified"`
	UserPriority   *TaskPriority `json:"user_priority,omitempty"`
	Suggestion     string        `json:"suggestion,omitempty"`
}

// IsBreak reports whether the block is a rest block. Break blocks never carry
// task IDs and pass through the optimizer untouched.
func (b *TimeBlock) IsBreak() bool {
	return b.BlockType == BlockTypeBreak
}

// WorkingHours is the daily scheduling window in whole hours of the day.
type WorkingHours struct {
	Start int `json:"start"` // 0-23
	End   int `json:"end"`   // 0-23, must be > Start
}

// SchedulePreferences carries user style preferences into generation.
type SchedulePreferences struct {
	Style PlanStyle `json:"style"`
}

// ScheduleStats summarizes a generated day plan.
type ScheduleStats struct {
	TotalBlocks int `json:"total_blocks"`
	TotalTime   int `json:"total_time"` // minutes across all blocks
	Efficiency  int `json:"efficiency"` // 0-100, scheduled tasks / incomplete tasks
}

// ScheduleChangeType classifies a diff entry between two schedule versions
type ScheduleChangeType string

const (
	ScheduleChangeAdded           ScheduleChangeType = "added"
	ScheduleChangeRescheduled     ScheduleChangeType = "rescheduled"
	ScheduleChangeDurationChanged ScheduleChangeType = "duration_changed"
)

// ScheduleChange is one entry in a schedule diff. A block changed in both
// start time and duration is reported once, as rescheduled.
type ScheduleChange struct {
	Type        ScheduleChangeType `json:"type"`
	Block       TimeBlock          `json:"block"`
	OldTime     *time.Time         `json:"old_time,omitempty"`
	OldDuration *int               `json:"old_duration,omitempty"`
}
