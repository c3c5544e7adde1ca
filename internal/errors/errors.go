// Package errors defines the coded errors returned by the repository core.
// Every failure a user can trigger carries a stable Code and the message the
// CLI prints; infrastructure failures are wrapped with fmt.Errorf instead.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	ErrNotFound         ErrorCode = "NOT_FOUND"
	ErrAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrInvalidOperation ErrorCode = "INVALID_OPERATION"
	ErrNotInitialized   ErrorCode = "NOT_INITIALIZED"

	// Staging and commit
	ErrNothingToCommit ErrorCode = "NOTHING_TO_COMMIT"
	ErrNothingToRemove ErrorCode = "NOTHING_TO_REMOVE"

	// Working tree and history
	ErrUntrackedFileConflict ErrorCode = "UNTRACKED_FILE_CONFLICT"
	ErrAmbiguousOrUnknownID  ErrorCode = "AMBIGUOUS_OR_UNKNOWN_ID"
	ErrNoCommonAncestor      ErrorCode = "NO_COMMON_ANCESTOR"

	// Merge short-circuits
	ErrDirtyStagingArea ErrorCode = "DIRTY_STAGING_AREA"
	ErrSelfMerge        ErrorCode = "SELF_MERGE"
	ErrAlreadyUpToDate  ErrorCode = "ALREADY_UP_TO_DATE"
)

// Error is a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. Returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an *Error
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// UserMessage returns the message meant for the terminal. The second result
// is false for errors that did not originate from a user-facing precondition.
func UserMessage(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) && e.Code != ErrInternal {
		return e.Message, true
	}
	return "", false
}
