// Package errors provides consistent error types for Daybook.
// It defines four main categories: UserError (fixable by user), StoreError
// (local persistence failed), TransportError (remote call failed), and
// ShapeError (a persisted record could not be interpreted even after
// migration).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	// ErrNotAuthenticated means sync was attempted with no signed-in
	// account. Callers treat it as a no-op, not a failure.
	ErrNotAuthenticated = errors.New("not signed in")

	// ErrSyncInFlight means a sync cycle is already running. A second
	// concurrent invocation is rejected rather than interleaved.
	ErrSyncInFlight = errors.New("sync already in progress")

	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidDateKey  = errors.New("invalid date key")
	ErrRemoteNotConfig = errors.New("remote sync not configured")
)

// UserError represents an error that the user can fix.
// Examples: invalid input, missing required arguments, incorrect format.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
}

func (e *UserError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return e.Message
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// StoreError represents a local persistence failure. Fatal for the
// single operation, non-fatal for the overall app; the store performs
// no retries, that policy belongs to the caller.
type StoreError struct {
	Op    string // The store operation that failed
	Key   string // The database key involved (optional)
	Cause error  // The underlying error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s failed for %s", e.Op, e.Key)
	}
	return fmt.Sprintf("store %s failed", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, key string, cause error) *StoreError {
	return &StoreError{Op: op, Key: key, Cause: cause}
}

// TransportError represents a remote call failure: network error, 5xx,
// rate limit, or expired auth.
type TransportError struct {
	Op         string // The remote operation that failed
	StatusCode int    // HTTP status, 0 for network-level failures
	Message    string // What happened
	Cause      error  // The underlying error (optional)
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is worth retrying: network
// errors, rate limiting, and server errors. Client errors are not.
func (e *TransportError) Retryable() bool {
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// NewTransportError creates a new TransportError.
func NewTransportError(op string, status int, message string, cause error) *TransportError {
	return &TransportError{Op: op, StatusCode: status, Message: message, Cause: cause}
}

// ShapeError represents a persisted blob that could not be decoded even
// after migration. The record is treated as empty rather than aborting
// the caller; the error exists so the condition can be logged.
type ShapeError struct {
	Key   string // The database key of the bad blob
	Cause error  // The underlying decode error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unreadable record at %s", e.Key)
}

func (e *ShapeError) Unwrap() error {
	return e.Cause
}

// NewShapeError creates a new ShapeError.
func NewShapeError(key string, cause error) *ShapeError {
	return &ShapeError{Key: key, Cause: cause}
}

// IsStoreError checks if an error is a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// IsTransportError checks if an error is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsShapeError checks if an error is a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// AsTransportError extracts a TransportError from an error chain.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	ok := errors.As(err, &te)
	return te, ok
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
