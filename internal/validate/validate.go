// Package validate provides input validation helpers for the Daybook CLI.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mwhitford/daybook/internal/dates"
	"github.com/mwhitford/daybook/internal/errors"
)

const (
	// MaxMedNameLength is the maximum length for a custom medication name.
	MaxMedNameLength = 32
	// MaxNoteLength is the maximum length for a meal or snack note.
	MaxNoteLength = 4096
	// MaxWaterML is the largest single water entry accepted, in milliliters.
	MaxWaterML = 5000
	// MaxWorkoutMinutes is the largest workout duration accepted.
	MaxWorkoutMinutes = 24 * 60
	// MaxSteps is the largest daily step count accepted.
	MaxSteps = 200000
)

// medNameRegex validates custom medication names (alphanumeric, dashes,
// underscores, periods).
var medNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// clockRegex validates 24-hour "HH:MM" strings.
var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// DateKey validates a "YYYY-MM-DD" date key.
func DateKey(key string) error {
	if key == "" {
		return errors.NewUserError("Date cannot be empty", "Provide a date like 2026-09-01")
	}
	if !dates.IsValid(key) {
		return errors.NewUserErrorWithField("date", key,
			"Invalid date",
			"Dates must be real calendar days in YYYY-MM-DD form")
	}
	return nil
}

// ClockTime validates a 24-hour "HH:MM" time of day.
func ClockTime(field, value string) error {
	if !clockRegex.MatchString(value) {
		return errors.NewUserErrorWithField(field, value,
			"Invalid time",
			"Use 24-hour HH:MM form like 07:30 or 23:15")
	}
	return nil
}

// Sentiment validates a 1-5 mood rating.
func Sentiment(value int) error {
	if value < 1 || value > 5 {
		return errors.NewUserErrorWithField("mood", fmt.Sprintf("%d", value),
			"Mood out of range",
			"Moods are rated 1 (worst) to 5 (best)")
	}
	return nil
}

// WaterML validates a single water entry in milliliters.
func WaterML(ml int) error {
	if ml <= 0 {
		return errors.NewUserErrorWithField("water", fmt.Sprintf("%d", ml),
			"Water amount must be positive",
			"Log milliliters, e.g. 'daybook log water 500'")
	}
	if ml > MaxWaterML {
		return errors.NewUserErrorWithField("water", fmt.Sprintf("%d", ml),
			"Water amount too large",
			fmt.Sprintf("Single entries are capped at %dml; log refills separately", MaxWaterML))
	}
	return nil
}

// WeightKG validates a body weight measurement.
func WeightKG(kg float64) error {
	if kg < 20 || kg > 400 {
		return errors.NewUserErrorWithField("weight", fmt.Sprintf("%.1f", kg),
			"Weight out of range",
			"Weights are recorded in kilograms between 20 and 400")
	}
	return nil
}

// Steps validates a daily step count.
func Steps(count int) error {
	if count < 0 || count > MaxSteps {
		return errors.NewUserErrorWithField("steps", fmt.Sprintf("%d", count),
			"Step count out of range",
			fmt.Sprintf("Step counts run from 0 to %d", MaxSteps))
	}
	return nil
}

// WorkoutMinutes validates a workout duration in minutes.
func WorkoutMinutes(minutes int) error {
	if minutes <= 0 || minutes > MaxWorkoutMinutes {
		return errors.NewUserErrorWithField("workout", fmt.Sprintf("%d", minutes),
			"Workout duration out of range",
			"Workouts are logged in minutes, up to a full day")
	}
	return nil
}

// DoseIndex validates a primary medication dose index.
func DoseIndex(index, count int) error {
	if index < 1 || index > count {
		return errors.NewUserErrorWithField("dose", fmt.Sprintf("%d", index),
			"Dose number out of range",
			fmt.Sprintf("Doses are numbered 1 to %d", count))
	}
	return nil
}

// MedName validates a custom medication name.
func MedName(name string) error {
	if name == "" {
		return errors.NewUserError("Medication name cannot be empty", "Provide a medication name")
	}
	if len(name) > MaxMedNameLength {
		return errors.NewUserErrorWithField("medication", name,
			"Medication name too long",
			fmt.Sprintf("Names must be %d characters or fewer", MaxMedNameLength))
	}
	if !medNameRegex.MatchString(name) {
		return errors.NewUserErrorWithField("medication", name,
			"Invalid medication name",
			"Names must start with a letter or number and contain only letters, numbers, dashes, underscores, or periods")
	}
	return nil
}

// Note validates a note/description.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errors.NewUserError(
			"Note too long",
			fmt.Sprintf("Notes must be %d characters or fewer", MaxNoteLength))
	}
	return nil
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewUserErrorWithField(field, fmt.Sprintf("%d", value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return nil
}
