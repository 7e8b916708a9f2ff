package scheduler

import (
	"github.com/flowday/flowday-api/internal/models"
	"github.com/google/uuid"
)

// DiffSchedules compares two schedule versions and reports, for each block in
// the new schedule, whether it was added, rescheduled, or had its duration
// changed. Unchanged blocks are omitted. Classification is exclusive: a block
// that both moved and changed duration is reported once, as rescheduled (the
// move entry carries the block's new bounds, so the duration change is
// visible from it).
func DiffSchedules(oldBlocks, newBlocks []models.TimeBlock) []models.ScheduleChange {
	previous := make(map[uuid.UUID]models.TimeBlock, len(oldBlocks))
	for _, b := range oldBlocks {
		previous[b.ID] = b
	}

	var changes []models.ScheduleChange
	for _, b := range newBlocks {
		old, ok := previous[b.ID]
		switch {
		case !ok:
			changes = append(changes, models.ScheduleChange{
				Type:  models.ScheduleChangeAdded,
				Block: b,
			})
		case !old.StartTime.Equal(b.StartTime):
			oldTime := old.StartTime
			changes = append(changes, models.ScheduleChange{
				Type:    models.ScheduleChangeRescheduled,
				Block:   b,
				OldTime: &oldTime,
			})
		case old.Duration != b.Duration:
			oldDuration := old.Duration
			changes = append(changes, models.ScheduleChange{
				Type:        models.ScheduleChangeDurationChanged,
				Block:       b,
				OldDuration: &oldDuration,
			})
		}
	}
	return changes
}
