// Package parser turns human-friendly CLI input into domain values:
// calendar dates, durations, and measurement amounts.
package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/mwhitford/daybook/internal/dates"
)

// DateResult holds the parsed date key and any error.
type DateResult struct {
	Key   string
	Error error
}

// ParseDate parses a natural language date expression into a date key.
// Supports formats like:
//   - "today", "yesterday"
//   - "last monday", "3 days ago"
//   - "2026-09-01" (ISO format)
func ParseDate(input string) DateResult {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "today") {
		return DateResult{Key: dates.Today()}
	}

	// ISO keys pass through untouched
	if dates.IsValid(input) {
		return DateResult{Key: input}
	}

	// Use go-dateparser for natural language parsing
	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return DateResult{Error: NewDateError(input)}
	}

	return DateResult{Key: dates.FromTime(result.Time)}
}
