// Package errors provides error code definitions shared across the Asista core.
package errors

import "fmt"

// ErrorCode represents a unique error code that can be surfaced to the UI shell.
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrInvalid    ErrorCode = "INVALID_INPUT"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Storage errors
	ErrStorage ErrorCode = "STORAGE_ERROR"

	// Alarm errors
	ErrAlarmMissingField ErrorCode = "ALARM_MISSING_FIELD"
	ErrAlarmNotFound     ErrorCode = "ALARM_NOT_FOUND"

	// Note errors
	ErrNoteEmpty    ErrorCode = "NOTE_EMPTY"
	ErrNoteNotFound ErrorCode = "NOTE_NOT_FOUND"

	// Settings errors
	ErrLanguageInvalid ErrorCode = "LANGUAGE_INVALID"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error is of a specific code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}
