package validate

import (
	"strings"
	"unicode"
)

// SanitizeNote cleans a note/description for safe storage.
func SanitizeNote(note string) string {
	// Trim whitespace
	note = strings.TrimSpace(note)

	// Remove null bytes (common injection attempt)
	note = strings.ReplaceAll(note, "\x00", "")

	// Normalize line endings
	note = strings.ReplaceAll(note, "\r\n", "\n")
	note = strings.ReplaceAll(note, "\r", "\n")

	return note
}

// SanitizeMedName cleans a custom medication name for safe use as a map key.
func SanitizeMedName(name string) string {
	// Trim whitespace
	name = strings.TrimSpace(name)

	// Convert to lowercase so "Vitamin-D" and "vitamin-d" are one entry
	name = strings.ToLower(name)

	// Keep only characters the validator accepts
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) ||
			r == '-' || r == '_' || r == '.' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// StripControlChars removes all control characters from a string.
func StripControlChars(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// TruncateString truncates a string to the given length, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
