package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountPattern matches a number with an optional unit, like "500ml" or "1.5 l".
var amountPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*([a-z]*)$`)

// ParseWaterML parses a water amount into milliliters.
// Supports formats like:
//   - "500" or "500ml"
//   - "0.5l" or "1.5 liters"
//   - "2 glasses" (250ml each)
func ParseWaterML(input string) (int, bool) {
	matches := amountPattern.FindStringSubmatch(strings.TrimSpace(input))
	if matches == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(matches[2]) {
	case "", "ml":
		return int(math.Round(value)), true
	case "l", "liter", "liters", "litre", "litres":
		return int(math.Round(value * 1000)), true
	case "glass", "glasses", "cup", "cups":
		return int(math.Round(value * 250)), true
	default:
		return 0, false
	}
}

// ParseWeightKG parses a body weight into kilograms.
// Supports formats like:
//   - "81.5" or "81.5kg"
//   - "179lb" or "179 lbs"
func ParseWeightKG(input string) (float64, bool) {
	matches := amountPattern.FindStringSubmatch(strings.TrimSpace(input))
	if matches == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(matches[2]) {
	case "", "kg", "kgs":
		return value, true
	case "lb", "lbs", "pound", "pounds":
		return math.Round(value*0.45359237*10) / 10, true
	default:
		return 0, false
	}
}

// ParseSteps parses a step count, allowing a thousands separator or "k"
// suffix: "8000", "8,000", "8k".
func ParseSteps(input string) (int, bool) {
	input = strings.ReplaceAll(strings.TrimSpace(input), ",", "")

	if k, found := strings.CutSuffix(strings.ToLower(input), "k"); found {
		value, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return 0, false
		}
		return int(math.Round(value * 1000)), true
	}

	count, err := strconv.Atoi(input)
	if err != nil {
		return 0, false
	}
	return count, true
}
