package scheduler

import (
	"sort"

	"github.com/flowday/flowday-api/internal/models"
)

// PrioritizeTasks returns the incomplete tasks sorted for scheduling:
// priority weight (high=3, medium=2, low=1, unknown=2) descending, then
// complexity (default 3) descending. The sort is stable so equal tasks keep
// their input order, which keeps generation deterministic.
func PrioritizeTasks(tasks []*models.Task) []*models.Task {
	prioritized := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil || t.Completed {
			continue
		}
		prioritized = append(prioritized, t)
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		wi, wj := prioritized[i].Priority.Weight(), prioritized[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return prioritized[i].EffectiveComplexity() > prioritized[j].EffectiveComplexity()
	})

	return prioritized
}
