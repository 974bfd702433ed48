// Package errors provides structured error types for datatree.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the editor and the render pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (datasets, formats, config)
//   - *_NOT_FOUND: Resource lookups that failed (nodes, fonts, files)
//   - RENDER_FAILED / INTERNAL_ERROR: Unexpected failures while drawing or encoding
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownColormap, "unknown colormap: %s", name)
//	if errors.Is(err, errors.ErrCodeUnknownColormap) {
//	    // Handle lookup error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDataset, origErr, "decode %s", path)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidDataset Code = "INVALID_DATASET"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidNode    Code = "INVALID_NODE"
	ErrCodeInvalidName    Code = "INVALID_NAME"
	ErrCodeDuplicateName  Code = "DUPLICATE_NAME"
	ErrCodeEmptyDataset   Code = "EMPTY_DATASET"

	// Lookup errors
	ErrCodeUnknownColormap Code = "UNKNOWN_COLORMAP"
	ErrCodeFontNotFound    Code = "FONT_NOT_FOUND"
	ErrCodeNodeNotFound    Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Rendering and internal errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
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

// hints suggest a next step for codes the user can usually fix themselves.
var hints = map[Code]string{
	ErrCodeFontNotFound:    `install the font or pick another family, e.g. --font-family Go`,
	ErrCodeUnknownColormap: `colormap names are matplotlib names such as hsv, viridis or tab20`,
	ErrCodeEmptyDataset:    `add at least one item, e.g. with "datatree edit"`,
	ErrCodeInvalidDataset:  `a dataset maps categories to subcategories to lists of item strings`,
	ErrCodeInvalidConfig:   `run "datatree config show" to see the effective settings`,
	ErrCodeUnsupported:     `PDF output needs rsvg-convert from librsvg`,
}

// Hint returns a suggestion for resolving err, or "" if there is none.
func Hint(err error) string {
	return hints[GetCode(err)]
}
