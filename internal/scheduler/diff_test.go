package scheduler

import (
	"testing"
	"time"

	"github.com/flowday/flowday-api/internal/models"
)

func TestDiffSchedules_SingleReschedule(t *testing.T) {
	t.Parallel()

	stable := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 60, 0.9)
	moved := sampleBlock(time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC), 45, 0.8)

	oldBlocks := []models.TimeBlock{stable, moved}

	relocated := moved
	relocated.StartTime = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	relocated.EndTime = relocated.StartTime.Add(45 * time.Minute)
	newBlocks := []models.TimeBlock{stable, relocated}

	changes := DiffSchedules(oldBlocks, newBlocks)

	if len(changes) != 1 {
		t.Fatalf("expected exactly 1 change, got %d", len(changes))
	}
	if changes[0].Type != models.ScheduleChangeRescheduled {
		t.Errorf("expected rescheduled, got %s", changes[0].Type)
	}
	if changes[0].OldTime == nil || !changes[0].OldTime.Equal(moved.StartTime) {
		t.Error("expected old start time recorded")
	}
	if changes[0].Block.ID != moved.ID {
		t.Error("expected the moved block in the change entry")
	}
}

func TestDiffSchedules_Added(t *testing.T) {
	t.Parallel()

	existing := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 60, 0.9)
	fresh := sampleBlock(time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC), 30, 0.8)

	changes := DiffSchedules([]models.TimeBlock{existing}, []models.TimeBlock{existing, fresh})

	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Type != models.ScheduleChangeAdded {
		t.Errorf("expected added, got %s", changes[0].Type)
	}
	if changes[0].OldTime != nil || changes[0].OldDuration != nil {
		t.Error("added entries carry no old values")
	}
}

func TestDiffSchedules_DurationChanged(t *testing.T) {
	t.Parallel()

	block := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 60, 0.9)

	resized := block
	resized.Duration = 90
	resized.EndTime = resized.StartTime.Add(90 * time.Minute)

	changes := DiffSchedules([]models.TimeBlock{block}, []models.TimeBlock{resized})

	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Type != models.ScheduleChangeDurationChanged {
		t.Errorf("expected duration_changed, got %s", changes[0].Type)
	}
	if changes[0].OldDuration == nil || *changes[0].OldDuration != 60 {
		t.Error("expected old duration 60 recorded")
	}
}

func TestDiffSchedules_RescheduleWinsOverDurationChange(t *testing.T) {
	t.Parallel()

	block := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 60, 0.9)

	both := block
	both.StartTime = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	both.Duration = 90
	both.EndTime = both.StartTime.Add(90 * time.Minute)

	changes := DiffSchedules([]models.TimeBlock{block}, []models.TimeBlock{both})

	if len(changes) != 1 {
		t.Fatalf("expected a single classification, got %d entries", len(changes))
	}
	if changes[0].Type != models.ScheduleChangeRescheduled {
		t.Errorf("expected rescheduled to win, got %s", changes[0].Type)
	}
}

func TestDiffSchedules_IdenticalSchedules(t *testing.T) {
	t.Parallel()

	blocks := []models.TimeBlock{
		sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 60, 0.9),
		sampleBlock(time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC), 30, 0.8),
	}

	if changes := DiffSchedules(blocks, blocks); len(changes) != 0 {
		t.Errorf("expected no changes for identical schedules, got %d", len(changes))
	}
}

func TestDiffSchedules_RemovedBlocksNotReported(t *testing.T) {
	t.Parallel()

	kept := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 60, 0.9)
	dropped := sampleBlock(time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC), 30, 0.8)

	changes := DiffSchedules([]models.TimeBlock{kept, dropped}, []models.TimeBlock{kept})
	if len(changes) != 0 {
		t.Errorf("diff walks the new schedule only; expected 0 changes, got %d", len(changes))
	}
}

func TestDiffSchedules_EmptyOldSchedule(t *testing.T) {
	t.Parallel()

	fresh := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 60, 0.9)
	changes := DiffSchedules(nil, []models.TimeBlock{fresh})

	if len(changes) != 1 || changes[0].Type != models.ScheduleChangeAdded {
		t.Fatalf("expected a single added entry, got %+v", changes)
	}
}
