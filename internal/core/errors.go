// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Engine errors. These are the only two failure kinds the strategy
	// engine reports; everything else is a normal zero-valued outcome.
	ErrConfiguration = &Error{Code: "CONFIGURATION_ERROR", Message: "invalid strategy parameters"}
	ErrDataIntegrity = &Error{Code: "DATA_INTEGRITY_ERROR", Message: "malformed bar data"}

	// Storage errors
	ErrNotFound = &Error{Code: "NOT_FOUND", Message: "record not found"}
	ErrNoData   = &Error{Code: "NO_DATA", Message: "no data available"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Auth errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid API key"}

	// LLM errors
	ErrLLMFailed      = &Error{Code: "LLM_FAILED", Message: "LLM request failed"}
	ErrLLMUnavailable = &Error{Code: "LLM_UNAVAILABLE", Message: "no LLM provider configured"}

	// Archive errors
	ErrArchiveFailed = &Error{Code: "ARCHIVE_FAILED", Message: "archive operation failed"}
)
