package scheduler

import (
	"math"
	"time"

	"github.com/flowday/flowday-api/internal/models"
	"github.com/google/uuid"
)

const (
	// DefaultTaskMinutes is assumed when a task has no duration estimate.
	DefaultTaskMinutes = 60
	// MaxBlockMinutes is the hard per-block ceiling regardless of estimate.
	MaxBlockMinutes = 90
	// BufferMinutes is the gap left after every work block.
	BufferMinutes = 15
	// BreakMinutes is the length of an inserted rest block.
	BreakMinutes = 15

	// windowUtilization caps the number of blocks at 80% of the window hours.
	windowUtilization = 0.8
)

// GenerateDayPlan converts a user's tasks into an ordered sequence of
// non-overlapping time blocks for the given day. Tasks are prioritized first;
// the allocator then walks the working-hours window with a cursor held in
// whole minutes since midnight, which keeps the 15-minute buffers exact.
//
// Completed tasks are skipped. No new block starts at or past the end of the
// window, though a block that starts inside it may run over. The preferences
// style is accepted for forward compatibility but does not change allocation
// math yet.
func (e *Engine) GenerateDayPlan(tasks []*models.Task, day time.Time, hours models.WorkingHours, prefs models.SchedulePreferences) ([]models.TimeBlock, models.ScheduleStats) {
	prioritized := PrioritizeTasks(tasks)

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	cursor := hours.Start * 60
	windowEnd := hours.End * 60

	maxBlocks := int(float64(hours.End-hours.Start) * windowUtilization)
	limit := len(prioritized)
	if maxBlocks < limit {
		limit = maxBlocks
	}

	var blocks []models.TimeBlock
	for i := 0; i < limit; i++ {
		if cursor >= windowEnd {
			break
		}
		task := prioritized[i]

		duration := DefaultTaskMinutes
		if task.EstimatedDuration != nil && *task.EstimatedDuration > 0 {
			duration = *task.EstimatedDuration
		}
		if duration > MaxBlockMinutes {
			duration = MaxBlockMinutes
		}

		start := midnight.Add(time.Duration(cursor) * time.Minute)
		block := models.TimeBlock{
			ID:             e.newID(),
			Title:          task.Title,
			StartTime:      start,
			EndTime:        start.Add(time.Duration(duration) * time.Minute),
			TaskIDs:        []uuid.UUID{task.ID},
			BlockType:      blockTypeFor(task),
			EnergyRequired: energyRequiredFor(task),
			Flexibility:    models.FlexibilityMoveable,
			AIGenerated:    true,
			Duration:       duration,
			Confidence:     blockConfidence(start.Hour(), task),
		}
		blocks = append(blocks, block)

		// Advance to the next whole hour past the block, plus the buffer.
		cursor += ((duration + 59) / 60) * 60
		cursor += BufferMinutes

		if block.BlockType == models.BlockTypeDeepWork && i+1 < limit && cursor < windowEnd {
			breakStart := midnight.Add(time.Duration(cursor) * time.Minute)
			blocks = append(blocks, models.TimeBlock{
				ID:             e.newID(),
				Title:          "Break",
				StartTime:      breakStart,
				EndTime:        breakStart.Add(BreakMinutes * time.Minute),
				TaskIDs:        []uuid.UUID{},
				BlockType:      models.BlockTypeBreak,
				EnergyRequired: models.EnergyLevelLow,
				Flexibility:    models.FlexibilityFlexible,
				AIGenerated:    true,
				Duration:       BreakMinutes,
				Confidence:     blockConfidence(breakStart.Hour(), nil),
			})
			cursor += BreakMinutes
		}
	}

	return blocks, planStats(blocks, len(prioritized))
}

// blockTypeFor derives the block type from the task, first match wins.
func blockTypeFor(task *models.Task) models.BlockType {
	switch {
	case task.Context == "administrative":
		return models.BlockTypeAdmin
	case task.Context == "learning":
		return models.BlockTypeLearning
	case task.Priority == models.TaskPriorityLow:
		return models.BlockTypeAdmin
	default:
		return models.BlockTypeDeepWork
	}
}

func energyRequiredFor(task *models.Task) models.EnergyLevel {
	switch task.EnergyLevel {
	case models.EnergyLevelLow, models.EnergyLevelMedium, models.EnergyLevelHigh:
		return task.EnergyLevel
	default:
		return models.EnergyLevelMedium
	}
}

// planStats summarizes a generated plan. Efficiency is the share of
// incomplete tasks that got a block, as a rounded percentage; zero tasks
// yields zero, never NaN.
func planStats(blocks []models.TimeBlock, incompleteTasks int) models.ScheduleStats {
	stats := models.ScheduleStats{TotalBlocks: len(blocks)}
	scheduled := 0
	for _, b := range blocks {
		stats.TotalTime += b.Duration
		if len(b.TaskIDs) > 0 {
			scheduled++
		}
	}
	if incompleteTasks > 0 {
		stats.Efficiency = int(math.Round(float64(scheduled) / float64(incompleteTasks) * 100))
	}
	return stats
}
