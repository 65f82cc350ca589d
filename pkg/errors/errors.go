// Package errors provides the structured error type shared by every
// component of commitsmith. Every fallible operation in this module
// returns a value, never a panic; this package is the shape of that value.
package errors

import (
	"fmt"
)

// Code identifies the category of a failure.
type Code string

const (
	// CodeParseFault marks a hunk invariant violation reported by the
	// explicit ValidateHunk checker. The parser itself never raises.
	CodeParseFault Code = "PARSE_FAULT"

	// CodeHunkNotFound marks a selection referencing an id absent from
	// the parsed diff.
	CodeHunkNotFound Code = "HUNK_NOT_FOUND"

	// CodeVCSRejected marks a patch the VCS collaborator refused to
	// apply to the staged index (the "check patch" step failed).
	CodeVCSRejected Code = "VCS_REJECTED"

	// CodeApplyFailed marks a patch that passed the check but failed
	// when actually applied.
	CodeApplyFailed Code = "APPLY_FAILED"

	// CodeCompensationFailed marks a failure while reading, locating an
	// anchor in, writing, or staging a compensation.
	CodeCompensationFailed Code = "COMPENSATION_FAILED"

	// CodeInvalidSelection marks a HunkSelection that references line
	// indices out of range for its hunk, or an unresolved plan-document
	// EDIT directive.
	CodeInvalidSelection Code = "INVALID_SELECTION"

	// CodeInvalidInput marks malformed arguments to a public operation.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeInternal marks a condition the caller cannot act on.
	CodeInternal Code = "INTERNAL_ERROR"
)

// AgentError is the structured error type returned across commitsmith's
// public interfaces.
type AgentError struct {
	Code    Code
	Message string
	Wrapped error
	Context map[string]string
}

// Error implements the error interface.
func (e *AgentError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/errors.As chains.
func (e *AgentError) Unwrap() error {
	return e.Wrapped
}

// WithContext attaches a key/value detail (a hunk id, file path, the
// VCS tool's stderr) to the error and returns it for chaining.
func (e *AgentError) WithContext(key, value string) *AgentError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// New creates an AgentError with the given code and message.
func New(code Code, message string) *AgentError {
	return &AgentError{Code: code, Message: message}
}

// Wrap creates an AgentError wrapping an existing error.
func Wrap(code Code, message string, err error) *AgentError {
	return &AgentError{Code: code, Message: message, Wrapped: err}
}

// Is reports whether err is an *AgentError carrying the given code.
func Is(err error, code Code) bool {
	agentErr, ok := err.(*AgentError)
	return ok && agentErr.Code == code
}

// HunkNotFoundError creates a CodeHunkNotFound error for the given id,
// matching the wording spec.md requires: "Hunk not found: <id>".
func HunkNotFoundError(id string) *AgentError {
	return New(CodeHunkNotFound, fmt.Sprintf("Hunk not found: %s", id)).
		WithContext("hunk_id", id)
}

// VCSRejectedError creates a CodeVCSRejected error, matching spec.md's
// wording: "Patch for <id> won't apply: <tool error>".
func VCSRejectedError(id, toolError string) *AgentError {
	return New(CodeVCSRejected, fmt.Sprintf("Patch for %s won't apply: %s", id, toolError)).
		WithContext("hunk_id", id).
		WithContext("tool_error", toolError)
}

// ApplyFailedError creates a CodeApplyFailed error, matching spec.md's
// wording: "Failed to stage <id>: <tool error>".
func ApplyFailedError(id, toolError string) *AgentError {
	return New(CodeApplyFailed, fmt.Sprintf("Failed to stage %s: %s", id, toolError)).
		WithContext("hunk_id", id).
		WithContext("tool_error", toolError)
}

// InvalidInputError creates a CodeInvalidInput error.
func InvalidInputError(message string) *AgentError {
	return New(CodeInvalidInput, message)
}

// InternalError creates a CodeInternal error.
func InternalError(message string) *AgentError {
	return New(CodeInternal, message)
}
