package parser

import (
	"fmt"
	"strings"

	"github.com/mwhitford/daybook/internal/errors"
)

// InputError represents a parsing error with helpful suggestions.
type InputError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// FormatWithExamples returns the error message with example suggestions.
func (e *InputError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"today",
	"yesterday",
	"last monday",
	"3 days ago",
	"2026-09-01",
}

// DurationExamples provides example duration formats.
var DurationExamples = []string{
	"45",
	"45m",
	"1h30m",
	"1.5h",
	"90 minutes",
}

// WaterExamples provides example water amount formats.
var WaterExamples = []string{
	"500",
	"500ml",
	"0.5l",
	"2 glasses",
}

// WeightExamples provides example weight formats.
var WeightExamples = []string{
	"81.5",
	"81.5kg",
	"179lb",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Dates can be natural language ('yesterday') or ISO ('2026-09-01').",
	}
}

// NewDurationError creates a duration parse error with standard examples.
func NewDurationError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "duration",
		Message:    "could not parse duration",
		Examples:   DurationExamples,
		Suggestion: "Durations can be specified in minutes (m) or hours (h); bare numbers are minutes.",
	}
}

// NewWaterError creates a water amount parse error with standard examples.
func NewWaterError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "water",
		Message:    "could not parse amount",
		Examples:   WaterExamples,
		Suggestion: "Amounts can be milliliters, liters, or glasses; bare numbers are milliliters.",
	}
}

// NewWeightError creates a weight parse error with standard examples.
func NewWeightError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "weight",
		Message:    "could not parse weight",
		Examples:   WeightExamples,
		Suggestion: "Weights can be kilograms or pounds; bare numbers are kilograms.",
	}
}

// ToUserError converts an InputError to a UserError for consistent handling.
func (e *InputError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	return errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
}
