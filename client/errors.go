// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package client

import "fmt"

// AuthenticationError indicates the backend rejected the credentials or
// the session token (HTTP 401, or an explicit login rejection).
type AuthenticationError struct {
	Message    string
	StatusCode int
}

func (e *AuthenticationError) Error() string { return e.Message }

// NotFoundError indicates a referenced resource or nested record does
// not exist (HTTP 404, or a missing record id in a configuration array).
type NotFoundError struct {
	Message    string
	StatusCode int
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates the backend rejected the payload
// semantically (HTTP 422).
type ValidationError struct {
	Message    string
	StatusCode int
}

func (e *ValidationError) Error() string { return e.Message }

// APIError is any other HTTP error status from the backend.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string { return e.Message }

// RequestError is a transport-level failure: no response was received
// (connection refused, timeout, DNS failure). It wraps the underlying
// cause.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return fmt.Sprintf("Request failed: %v", e.Err) }

// Unwrap returns the underlying transport error.
func (e *RequestError) Unwrap() error { return e.Err }
