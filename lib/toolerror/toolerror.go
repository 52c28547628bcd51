// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolerror provides categorized errors for tool handlers. The
// MCP server inspects the category to produce structured error metadata
// alongside the human-readable error text, enabling agents to make
// programmatic recovery decisions without parsing message strings.
package toolerror

import "fmt"

// Category classifies tool errors so that MCP clients can make
// programmatic decisions (retry, fix input, escalate).
type Category string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required arguments, malformed UUIDs, payloads the backend
	// rejected semantically. The caller should fix the input and retry.
	CategoryValidation Category = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// unknown project, missing workflow/state/transition/image record.
	// Retrying with the same arguments will not help.
	CategoryNotFound Category = "not_found"

	// CategoryForbidden indicates the caller is not authenticated or the
	// backend rejected the session token. The caller should log in.
	CategoryForbidden Category = "forbidden"

	// CategoryConflict indicates the operation conflicts with existing
	// state: duplicate resource, concurrent modification.
	CategoryConflict Category = "conflict"

	// CategoryTransient indicates a temporary failure: network error,
	// timeout, rate limit. The caller should back off and retry.
	CategoryTransient Category = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, unparseable backend responses. The caller should report
	// the error rather than retry.
	CategoryInternal Category = "internal"
)

// Error is a categorized error produced by tool handlers. It wraps an
// inner error, preserving the full chain for debugging while adding
// category metadata for the MCP layer. Use the category-specific
// constructors rather than constructing Error directly.
type Error struct {
	// Category classifies the error for programmatic handling.
	Category Category

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string — it travels separately via the MCP errorInfo
// field, not in the text content block.
func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the wrapper.
func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same call might succeed.
func (e *Error) Retryable() bool { return e.Category == CategoryTransient }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the caller lacks a valid session.
func Forbidden(format string, args ...any) *Error {
	return &Error{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: the operation conflicts with existing state.
func Conflict(format string, args ...any) *Error {
	return &Error{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *Error {
	return &Error{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
