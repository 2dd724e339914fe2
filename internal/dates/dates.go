// Package dates provides local-calendar date-key arithmetic.
//
// A date key is the canonical "YYYY-MM-DD" string for a calendar day in
// the device's local timezone. Keys are compared as opaque ordered
// strings; both sides of a sync compare on the key, never on instants.
package dates

import (
	"regexp"
	"time"
)

// Layout is the date key format.
const Layout = "2006-01-02"

var keyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Today returns the date key for the current local calendar day.
func Today() string {
	return FromTime(time.Now())
}

// FromTime returns the date key for t in t's location.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// IsValid reports whether s has the YYYY-MM-DD shape. It defends the
// store's key namespace against unrelated keys.
func IsValid(s string) bool {
	if !keyPattern.MatchString(s) {
		return false
	}
	_, err := time.ParseInLocation(Layout, s, time.Local)
	return err == nil
}

// Shift returns the date key delta days away from dateKey.
func Shift(dateKey string, delta int) (string, error) {
	t, err := time.ParseInLocation(Layout, dateKey, time.Local)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, delta).Format(Layout), nil
}

// WindowStart returns the oldest key of a trailing window of n days
// ending at endKey inclusive. For n=60 and endKey=today that is
// today-59, so exactly n calendar days participate.
func WindowStart(endKey string, n int) (string, error) {
	return Shift(endKey, -n+1)
}

// InRange reports whether key falls within [start, end] inclusive,
// comparing keys as ordered strings.
func InRange(key, start, end string) bool {
	return key >= start && key <= end
}
