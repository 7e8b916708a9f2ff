package scheduler

import (
	"testing"

	"github.com/flowday/flowday-api/internal/models"
	"github.com/google/uuid"
)

func newTask(title string, priority models.TaskPriority, complexity int) *models.Task {
	return &models.Task{
		ID:         uuid.New(),
		Title:      title,
		Priority:   priority,
		Complexity: complexity,
	}
}

func TestPrioritizeTasks_Ordering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tasks     []*models.Task
		wantOrder []string
	}{
		{
			name: "priority weight dominates",
			tasks: []*models.Task{
				newTask("low", models.TaskPriorityLow, 5),
				newTask("high", models.TaskPriorityHigh, 1),
				newTask("medium", models.TaskPriorityMedium, 5),
			},
			wantOrder: []string{"high", "medium", "low"},
		},
		{
			name: "complexity breaks priority ties",
			tasks: []*models.Task{
				newTask("easy", models.TaskPriorityHigh, 1),
				newTask("hard", models.TaskPriorityHigh, 5),
			},
			wantOrder: []string{"hard", "easy"},
		},
		{
			name: "unknown priority weighs like medium",
			tasks: []*models.Task{
				newTask("mystery", models.TaskPriority("urgent-ish"), 3),
				newTask("high", models.TaskPriorityHigh, 3),
				newTask("low", models.TaskPriorityLow, 3),
			},
			wantOrder: []string{"high", "mystery", "low"},
		},
		{
			name: "missing complexity defaults to 3",
			tasks: []*models.Task{
				newTask("unscored", models.TaskPriorityMedium, 0),
				newTask("trivial", models.TaskPriorityMedium, 1),
				newTask("hard", models.TaskPriorityMedium, 5),
			},
			wantOrder: []string{"hard", "unscored", "trivial"},
		},
		{
			name:      "empty input yields empty output",
			tasks:     nil,
			wantOrder: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := PrioritizeTasks(tt.tasks)
			if len(got) != len(tt.wantOrder) {
				t.Fatalf("expected %d tasks, got %d", len(tt.wantOrder), len(got))
			}
			for i, title := range tt.wantOrder {
				if got[i].Title != title {
					t.Errorf("position %d: expected %q, got %q", i, title, got[i].Title)
				}
			}
		})
	}
}

func TestPrioritizeTasks_StableOnTies(t *testing.T) {
	t.Parallel()

	first := newTask("first", models.TaskPriorityMedium, 3)
	second := newTask("second", models.TaskPriorityMedium, 3)

	got := PrioritizeTasks([]*models.Task{first, second})
	if got[0].Title != "first" || got[1].Title != "second" {
		t.Errorf("expected input order preserved for equal tasks, got [%s, %s]", got[0].Title, got[1].Title)
	}

	// Reverse the input: relative order must follow the input, not the IDs.
	got = PrioritizeTasks([]*models.Task{second, first})
	if got[0].Title != "second" || got[1].Title != "first" {
		t.Errorf("expected input order preserved for equal tasks, got [%s, %s]", got[0].Title, got[1].Title)
	}
}

func TestPrioritizeTasks_FiltersCompleted(t *testing.T) {
	t.Parallel()

	done := newTask("done", models.TaskPriorityHigh, 5)
	done.Completed = true
	open := newTask("open", models.TaskPriorityLow, 1)

	got := PrioritizeTasks([]*models.Task{done, open})
	if len(got) != 1 || got[0].Title != "open" {
		t.Fatalf("expected only incomplete tasks, got %d entries", len(got))
	}
}

func TestPrioritizeTasks_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	tasks := []*models.Task{
		newTask("low", models.TaskPriorityLow, 1),
		newTask("high", models.TaskPriorityHigh, 5),
	}

	_ = PrioritizeTasks(tasks)
	if tasks[0].Title != "low" || tasks[1].Title != "high" {
		t.Error("expected input slice order unchanged")
	}
}
