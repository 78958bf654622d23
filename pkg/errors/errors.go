// Package errors provides structured error types for evekit.
//
// This package defines error codes and types that enable:
//   - A uniform failure taxonomy across the dispatcher, the API clients and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The dispatch taxonomy is:
//   - TRANSPORT_FAILURE: connection-level failure or 5xx; transient, never cached
//   - REJECTED_CREDENTIAL: the remote service answered 403 Forbidden
//   - DECODE_FAILURE: the response body did not match the expected shape
//   - UNEXPECTED_FAILURE: anything else at the dispatcher boundary
//   - CANCELED: the caller's context ended before the request completed
//
// INVALID_KEY is produced by [apikey.Key] accessors when a key was rejected and its
// data therefore cannot be loaded. INVALID_INPUT and NOT_FOUND cover local validation
// and local lookups (for example the key store).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid key id: %d", id)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "GET %s", url)
//
// [apikey.Key]: github.com/matzehuels/evekit/pkg/apikey.Key
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Dispatch taxonomy
	ErrCodeTransport  Code = "TRANSPORT_FAILURE"
	ErrCodeRejected   Code = "REJECTED_CREDENTIAL"
	ErrCodeDecode     Code = "DECODE_FAILURE"
	ErrCodeUnexpected Code = "UNEXPECTED_FAILURE"
	ErrCodeCanceled   Code = "CANCELED"

	// Credential state
	ErrCodeInvalidKey Code = "INVALID_KEY"

	// Local errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// so a DECODE_FAILURE wrapped inside another *Error is still found.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsRejected reports whether err is a REJECTED_CREDENTIAL failure.
func IsRejected(err error) bool { return Is(err, ErrCodeRejected) }

// IsTransport reports whether err is a TRANSPORT_FAILURE.
func IsTransport(err error) bool { return Is(err, ErrCodeTransport) }
