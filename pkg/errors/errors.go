// Package errors provides structured error types for the gplot library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the build pipeline and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that name the offending
//     geometry, statistic, or aesthetic
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration errors detected during plot building
//   - MISSING_*: Required inputs that were not supplied
//   - EVALUATION_*: Mapping expression evaluation failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingAesthetic,
//	    "geom_point requires the following missing aesthetics: y")
//	if errors.Is(err, errors.ErrCodeMissingAesthetic) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeEvaluation, origErr, "evaluating aesthetic %q", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors (fatal to a build, detected fail-fast)
	ErrCodeInvalidData          Code = "INVALID_DATA"
	ErrCodeDataFunction         Code = "INVALID_DATA_FUNCTION"
	ErrCodeInvalidSpec          Code = "INVALID_SPEC"
	ErrCodeInvalidScale         Code = "INVALID_SCALE"
	ErrCodeMissingAesthetic     Code = "MISSING_AESTHETIC"
	ErrCodeIncompatibleAes      Code = "INCOMPATIBLE_AESTHETIC"
	ErrCodeMissingColumn        Code = "MISSING_COLUMN"
	ErrCodeColumnLengthMismatch Code = "COLUMN_LENGTH_MISMATCH"

	// Expression evaluation errors (propagated from the evaluator)
	ErrCodeEvaluation Code = "EVALUATION_FAILED"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
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
