package scheduler

import "github.com/flowday/flowday-api/internal/models"

const baseConfidence = 0.8

// blockConfidence scores how likely a block is to succeed at its slot.
// Base 0.8, +0.1 for a morning-peak start (09-11), +0.05 for an
// afternoon-focus start (14-16), +0.1 for a high-priority task, +0.05 for a
// simple task (complexity <= 2). Clamped to 1.0. task is nil for breaks,
// which get only the time-of-day bonuses.
func blockConfidence(startHour int, task *models.Task) float64 {
	score := baseConfidence
	if startHour >= 9 && startHour <= 11 {
		score += 0.1
	}
	if startHour >= 14 && startHour <= 16 {
		score += 0.05
	}
	if task != nil {
		if task.Priority == models.TaskPriorityHigh {
			score += 0.1
		}
		if task.EffectiveComplexity() <= 2 {
			score += 0.05
		}
	}
	return clampConfidence(score)
}

// clampConfidence bounds a confidence score to [0, 1].
func clampConfidence(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}
