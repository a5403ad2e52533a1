// Package errors provides structured error types for depviz.
//
// This package defines error codes and types that enable:
//   - Consistent handling of fatal errors in the CLI
//   - Machine-readable error codes mapped to process exit codes
//   - User-friendly one-line diagnostics
//
// Per-package registry failures are not reported through this package: they
// are recorded on graph nodes and rendered inline. Only errors that end a run
// carry a [Code].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfigInvalid, "missing field %q", "package_name")
//	if errors.Is(err, errors.ErrCodeConfigInvalid) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "write %s", path)
//	os.Exit(errors.ExitCode(err))
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeConfigInvalid  Code = "CONFIG_INVALID"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidInput   Code = "INVALID_INPUT"

	// Registry errors
	ErrCodeRegistry        Code = "REGISTRY_ERROR"
	ErrCodeRootUnreachable Code = "ROOT_UNREACHABLE"

	// Output errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal  Code = "INTERNAL_ERROR"
	ErrCodeCancelled Code = "CANCELLED"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitConfig      = 1
	ExitUnreachable = 2
	ExitFailure     = 3
	ExitInterrupted = 130
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
// For *Error types, returns the message followed by the cause, without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps err to the process exit code. Context cancellation anywhere
// in the chain counts as an interrupt; errors without a code are failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch GetCode(err) {
	case ErrCodeConfigInvalid, ErrCodeInvalidPackage, ErrCodeInvalidInput:
		return ExitConfig
	case ErrCodeRootUnreachable, ErrCodeRegistry:
		return ExitUnreachable
	case ErrCodeCancelled:
		return ExitInterrupted
	default:
		return ExitFailure
	}
}
