package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/flowday/flowday-api/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("task_priority", validateTaskPriority); err != nil {
		panic(fmt.Sprintf("failed to register task_priority validator: %v", err))
	}
	if err := Validate.RegisterValidation("energy_level", validateEnergyLevel); err != nil {
		panic(fmt.Sprintf("failed to register energy_level validator: %v", err))
	}
	if err := Validate.RegisterValidation("plan_style", validatePlanStyle); err != nil {
		panic(fmt.Sprintf("failed to register plan_style validator: %v", err))
	}
	if err := Validate.RegisterValidation("block_type", validateBlockType); err != nil {
		panic(fmt.Sprintf("failed to register block_type validator: %v", err))
	}
}

// validateTaskPriority validates that a string is a valid TaskPriority enum value
func validateTaskPriority(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.TaskPriority(value) {
	case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
		return true
	default:
		return false
	}
}

// validateEnergyLevel validates that a string is a valid EnergyLevel enum value
func validateEnergyLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.EnergyLevel(value) {
	case models.EnergyLevelHigh, models.EnergyLevelMedium, models.EnergyLevelLow:
		return true
	default:
		return false
	}
}

// validatePlanStyle validates that a string is a valid PlanStyle enum value
func validatePlanStyle(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.PlanStyle(value) {
	case models.PlanStyleBalanced, models.PlanStyleIntense, models.PlanStyleRelaxed:
		return true
	default:
		return false
	}
}

// validateBlockType validates that a string is a valid BlockType enum value
func validateBlockType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.BlockType(value) {
	case models.BlockTypeDeepWork, models.BlockTypeMeetings, models.BlockTypeAdmin, models.BlockTypeBreak, models.BlockTypeLearning:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateTaskPriority validates a TaskPriority string value
func ValidateTaskPriority(value string) error {
	switch models.TaskPriority(value) {
	case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
		return nil
	default:
		return fmt.Errorf("invalid priority: %s (must be 'high', 'medium', or 'low')", value)
	}
}

// ValidateWorkingHours checks that a working-hours window is well formed.
func ValidateWorkingHours(hours models.WorkingHours) error {
	if hours.Start < 0 || hours.Start > 23 {
		return fmt.Errorf("invalid working hours start: %d (must be 0-23)", hours.Start)
	}
	if hours.End < 1 || hours.End > 24 {
		return fmt.Errorf("invalid working hours end: %d (must be 1-24)", hours.End)
	}
	if hours.End <= hours.Start {
		return fmt.Errorf("working hours end (%d) must be after start (%d)", hours.End, hours.Start)
	}
	return nil
}

// ValidateFocusQuality checks a focus quality rating.
func ValidateFocusQuality(quality int) error {
	if quality < 1 || quality > 5 {
		return fmt.Errorf("invalid focus quality: %d (must be 1-5)", quality)
	}
	return nil
}
