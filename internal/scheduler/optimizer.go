package scheduler

import (
	"fmt"

	"github.com/flowday/flowday-api/internal/models"
)

// Suggestion texts attached to blocks by the optimizer.
const (
	SuggestionMoveHighEnergy = "Consider moving high-energy tasks here"
	SuggestionReschedule     = "Consider rescheduling to a more productive time"
)

const (
	highProductivityThreshold = 0.7
	lowProductivityThreshold  = 0.3
	// neutralProductivity is assumed for hours with no session history, so a
	// user with no data never crosses either threshold.
	neutralProductivity = 0.5
	// lowHourPenalty deweights high-energy blocks scheduled in hours the user
	// has historically focused poorly in.
	lowHourPenalty = 0.7
)

// OptimizationReport summarizes what the optimizer changed, for building
// user-facing improvement stats without re-walking the schedule.
type OptimizationReport struct {
	BetterTimeSlots     int      // blocks in high-productivity hours flagged for heavier work
	Deweighted          int      // high-energy blocks deweighted out of low-productivity hours
	AvgConfidenceBefore float64
	AvgConfidenceAfter  float64
	Reasoning           []string
}

// HourlyProductivity builds a per-hour focus profile from past sessions:
// the arithmetic mean of focusQuality/5 for sessions starting in that hour.
// Hours with no usable sessions are absent from the map; callers default
// them to the neutral midpoint.
func HourlyProductivity(sessions []*models.FocusSession) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, s := range sessions {
		if s == nil || !s.HasQuality() {
			continue
		}
		hour := s.StartTime.Hour()
		sums[hour] += float64(*s.FocusQuality) / 5.0
		counts[hour]++
	}

	profile := make(map[int]float64, len(sums))
	for hour, sum := range sums {
		profile[hour] = sum / float64(counts[hour])
	}
	return profile
}

// OptimizeWithHistory annotates a schedule against the user's hourly
// productivity profile. Blocks are never reordered or resized: a
// non-high-energy block sitting in a strong hour gets an advisory
// suggestion; a high-energy block in a weak hour gets a rescheduling
// suggestion and a confidence deweight. Breaks pass through untouched.
func OptimizeWithHistory(blocks []models.TimeBlock, sessions []*models.FocusSession) ([]models.TimeBlock, OptimizationReport) {
	profile := HourlyProductivity(sessions)

	updated := make([]models.TimeBlock, len(blocks))
	copy(updated, blocks)

	var report OptimizationReport
	report.AvgConfidenceBefore = averageConfidence(blocks)

	for i := range updated {
		b := updated[i]
		if b.IsBreak() {
			continue
		}

		hour := b.StartTime.Hour()
		productivity, ok := profile[hour]
		if !ok {
			productivity = neutralProductivity
		}

		switch {
		case productivity > highProductivityThreshold && b.EnergyRequired != models.EnergyLevelHigh:
			b.Suggestion = SuggestionMoveHighEnergy
			report.BetterTimeSlots++
			report.Reasoning = append(report.Reasoning, fmt.Sprintf(
				"%02d:00 is one of your most productive hours (%.0f%%); %q could make way for more demanding work",
				hour, productivity*100, b.Title))
		case productivity < lowProductivityThreshold && b.EnergyRequired == models.EnergyLevelHigh:
			b.Suggestion = SuggestionReschedule
			b.Confidence = clampConfidence(b.Confidence * lowHourPenalty)
			report.Deweighted++
			report.Reasoning = append(report.Reasoning, fmt.Sprintf(
				"%q needs high energy but %02d:00 has historically been a low-focus hour (%.0f%%)",
				b.Title, hour, productivity*100))
		}

		updated[i] = b
	}

	report.AvgConfidenceAfter = averageConfidence(updated)
	return updated, report
}

func averageConfidence(blocks []models.TimeBlock) float64 {
	if len(blocks) == 0 {
		return 0
	}
	var sum float64
	for _, b := range blocks {
		sum += b.Confidence
	}
	return sum / float64(len(blocks))
}
