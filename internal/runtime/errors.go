package runtime

import (
	stderrors "errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/mwhitford/daybook/internal/errors"
)

// ErrDiskFull indicates the database could not be written for lack of space.
var ErrDiskFull = stderrors.New("disk full: unable to write to database")

// Suggestions provides helpful suggestions for common errors.
var Suggestions = map[error]string{
	errors.ErrSyncInFlight:     "Wait for the running sync to finish, then try again.",
	errors.ErrRemoteNotConfig:  "Set DAYBOOK_REMOTE_URL, DAYBOOK_ACCOUNT, and DAYBOOK_TOKEN to enable sync.",
	errors.ErrNotAuthenticated: "Set DAYBOOK_ACCOUNT and DAYBOOK_TOKEN to sign in.",
	errors.ErrInvalidDateKey:   "Dates look like 2026-09-01, or use words like 'yesterday'.",
	ErrDiskFull:                "Free up disk space and try again. Nothing was lost; the last write was rejected, not corrupted.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	var userErr *errors.UserError
	if stderrors.As(err, &userErr) && userErr.Suggestion != "" {
		return userErr.Suggestion
	}
	for knownErr, suggestion := range Suggestions {
		if stderrors.Is(err, knownErr) {
			return suggestion
		}
	}
	if IsDiskFullError(err) {
		return Suggestions[ErrDiskFull]
	}
	return ""
}

// FormatError formats an error with optional suggestion.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}

// IsDiskFullError checks if an error indicates a disk full condition.
// It checks for ENOSPC and common disk full error patterns.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}

	if stderrors.Is(err, ErrDiskFull) {
		return true
	}

	// Check for ENOSPC (no space left on device)
	var errno syscall.Errno
	if stderrors.As(err, &errno) {
		if errno == syscall.ENOSPC {
			return true
		}
	}

	// Check error message for disk full patterns
	errStr := strings.ToLower(err.Error())
	diskFullPatterns := []string{
		"no space left on device",
		"disk full",
		"enospc",
		"not enough space",
		"insufficient disk space",
		"out of disk space",
	}

	for _, pattern := range diskFullPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// WrapDiskFullError wraps an error with the disk-full sentinel if it
// indicates a disk full condition; otherwise the error is returned unchanged.
func WrapDiskFullError(err error, op string) error {
	if err == nil {
		return nil
	}
	if IsDiskFullError(err) && !stderrors.Is(err, ErrDiskFull) {
		return fmt.Errorf("%w during %s: %v", ErrDiskFull, op, err)
	}
	return err
}
