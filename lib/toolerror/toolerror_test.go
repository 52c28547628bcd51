// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package toolerror

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructorsSetCategory(t *testing.T) {
	cases := []struct {
		err      *Error
		category Category
	}{
		{Validation("bad input"), CategoryValidation},
		{NotFound("missing"), CategoryNotFound},
		{Forbidden("no session"), CategoryForbidden},
		{Conflict("already exists"), CategoryConflict},
		{Transient("try again"), CategoryTransient},
		{Internal("bug"), CategoryInternal},
	}
	for _, c := range cases {
		if c.err.Category != c.category {
			t.Errorf("category = %q, want %q", c.err.Category, c.category)
		}
	}
}

func TestErrorStringOmitsCategory(t *testing.T) {
	err := NotFound("Transition not found: %s", "transition-1234abcd")
	if got, want := err.Error(), "Transition not found: transition-1234abcd"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRetryable(t *testing.T) {
	if !Transient("network down").Retryable() {
		t.Error("transient errors must be retryable")
	}
	for _, err := range []*Error{Validation("v"), NotFound("n"), Forbidden("f"), Conflict("c"), Internal("i")} {
		if err.Retryable() {
			t.Errorf("%s errors must not be retryable", err.Category)
		}
	}
}

func TestUnwrapPreservesChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transient("request failed: %w", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the wrapped cause")
	}

	var toolErr *Error
	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.As(wrapped, &toolErr) || toolErr.Category != CategoryTransient {
		t.Errorf("errors.As through an outer wrap failed: %v", wrapped)
	}
}
