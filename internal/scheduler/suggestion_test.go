package scheduler

import (
	"testing"
	"time"

	"github.com/flowday/flowday-api/internal/models"
	"github.com/google/uuid"
)

func sampleBlock(start time.Time, durationMin int, confidence float64) models.TimeBlock {
	return models.TimeBlock{
		ID:             uuid.New(),
		Title:          "sample",
		StartTime:      start,
		EndTime:        start.Add(time.Duration(durationMin) * time.Minute),
		TaskIDs:        []uuid.UUID{uuid.New()},
		BlockType:      models.BlockTypeDeepWork,
		EnergyRequired: models.EnergyLevelMedium,
		Flexibility:    models.FlexibilityMoveable,
		AIGenerated:    true,
		Duration:       durationMin,
		Confidence:     confidence,
	}
}

func TestApplySuggestion_NewDuration(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	block := sampleBlock(start, 25, 0.8)
	blocks := []models.TimeBlock{block}

	updated := ApplySuggestion(blocks, block.ID, BlockSuggestion{NewDuration: intPtr(45)})

	got := updated[0]
	wantEnd := time.Date(2025, 3, 10, 9, 45, 0, 0, time.UTC)
	if !got.EndTime.Equal(wantEnd) {
		t.Errorf("expected end 09:45, got %s", got.EndTime.Format("15:04"))
	}
	if got.Duration != 45 {
		t.Errorf("expected duration 45, got %d", got.Duration)
	}
	if !got.UserModified {
		t.Error("expected block marked user-modified")
	}
	if !almostEqual(got.Confidence, 0.9) {
		t.Errorf("expected confidence bumped to 0.9, got %v", got.Confidence)
	}
}

func TestApplySuggestion_DurationIsIdempotent(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	block := sampleBlock(start, 25, 0.5)
	blocks := []models.TimeBlock{block}

	once := ApplySuggestion(blocks, block.ID, BlockSuggestion{NewDuration: intPtr(45)})
	twice := ApplySuggestion(once, block.ID, BlockSuggestion{NewDuration: intPtr(45)})

	if !once[0].EndTime.Equal(twice[0].EndTime) {
		t.Errorf("duration must be set absolutely: %s vs %s",
			once[0].EndTime.Format("15:04"), twice[0].EndTime.Format("15:04"))
	}
	if twice[0].Duration != 45 {
		t.Errorf("expected duration 45 after reapply, got %d", twice[0].Duration)
	}
}

func TestApplySuggestion_NewTimePreservesDuration(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	block := sampleBlock(start, 50, 0.7)
	blocks := []models.TimeBlock{block}

	newStart := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	updated := ApplySuggestion(blocks, block.ID, BlockSuggestion{NewTime: &newStart})

	got := updated[0]
	if !got.StartTime.Equal(newStart) {
		t.Errorf("expected start 14:30, got %s", got.StartTime.Format("15:04"))
	}
	if want := newStart.Add(50 * time.Minute); !got.EndTime.Equal(want) {
		t.Errorf("expected end %s, got %s", want.Format("15:04"), got.EndTime.Format("15:04"))
	}
	if got.Duration != 50 {
		t.Errorf("expected duration preserved at 50, got %d", got.Duration)
	}
}

func TestApplySuggestion_NewPriority(t *testing.T) {
	t.Parallel()

	block := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 30, 0.8)
	priority := models.TaskPriorityHigh

	updated := ApplySuggestion([]models.TimeBlock{block}, block.ID, BlockSuggestion{NewPriority: &priority})

	if updated[0].UserPriority == nil || *updated[0].UserPriority != models.TaskPriorityHigh {
		t.Error("expected user priority recorded")
	}
	// The placed block's position and bounds are untouched by a priority edit.
	if !updated[0].StartTime.Equal(block.StartTime) || updated[0].Duration != block.Duration {
		t.Error("expected bounds unchanged by priority suggestion")
	}
}

func TestApplySuggestion_ConfidenceClampedAtOne(t *testing.T) {
	t.Parallel()

	block := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 30, 0.95)

	updated := ApplySuggestion([]models.TimeBlock{block}, block.ID, BlockSuggestion{NewDuration: intPtr(30)})
	if updated[0].Confidence > 1 {
		t.Errorf("expected confidence clamped to 1.0, got %v", updated[0].Confidence)
	}
	if !almostEqual(updated[0].Confidence, 1.0) {
		t.Errorf("expected confidence 1.0, got %v", updated[0].Confidence)
	}
}

func TestApplySuggestion_UnknownBlockIsNoOp(t *testing.T) {
	t.Parallel()

	block := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 30, 0.8)
	blocks := []models.TimeBlock{block}

	updated := ApplySuggestion(blocks, uuid.New(), BlockSuggestion{NewDuration: intPtr(45)})

	if len(updated) != 1 {
		t.Fatalf("expected 1 block, got %d", len(updated))
	}
	if updated[0].Duration != 30 || updated[0].UserModified {
		t.Error("expected schedule unchanged for unknown block ID")
	}
}

func TestApplySuggestion_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	block := sampleBlock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 30, 0.8)
	blocks := []models.TimeBlock{block}

	_ = ApplySuggestion(blocks, block.ID, BlockSuggestion{NewDuration: intPtr(60)})

	if blocks[0].Duration != 30 || blocks[0].UserModified {
		t.Error("expected original schedule untouched")
	}
}
