// Package errors provides structured error types for codeshot.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP endpoint
//   - Machine-readable error codes for programmatic handling
//   - A clear split between conditions that degrade in place and
//     conditions that abort a single render
//
// # Error Codes
//
// Non-fatal codes are reported (logged, attached to render stats) while the
// render continues with a fallback:
//   - THEME_NOT_FOUND: the default theme is used
//   - UNSUPPORTED_LANGUAGE: plain-text tokenization is used
//   - SHADER_RENDER_FAILURE: the flat/gradient background is used
//   - EMOJI_FETCH_FAILURE: the raw character is drawn
//
// Fatal codes abort one render call and are returned to the caller:
//   - SURFACE_ALLOCATION_FAILURE: the canvas could not be allocated
//   - ENCODING_FAILURE: PNG encoding failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "width must be >= 0, got %d", w)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeEncodingFailure, origErr, "encode png")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidColor Code = "INVALID_COLOR"
	ErrCodeInvalidTheme Code = "INVALID_THEME"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Degradable render conditions
	ErrCodeThemeNotFound       Code = "THEME_NOT_FOUND"
	ErrCodeUnsupportedLanguage Code = "UNSUPPORTED_LANGUAGE"
	ErrCodeShaderRenderFailure Code = "SHADER_RENDER_FAILURE"
	ErrCodeEmojiFetchFailure   Code = "EMOJI_FETCH_FAILURE"

	// Fatal render conditions
	ErrCodeSurfaceAllocation Code = "SURFACE_ALLOCATION_FAILURE"
	ErrCodeEncodingFailure   Code = "ENCODING_FAILURE"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Fatal reports whether err aborts a render. Degradable codes
// (theme, language, shader, emoji) are never fatal.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	switch GetCode(err) {
	case ErrCodeThemeNotFound, ErrCodeUnsupportedLanguage,
		ErrCodeShaderRenderFailure, ErrCodeEmojiFetchFailure:
		return false
	}
	return true
}
