// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides small HTTP helpers shared by API clients.
package netutil

import (
	"io"
)

// MaxResponseSize caps how much of an HTTP response body is read.
// Qontinui configuration documents can carry base64 image data, so the
// limit is generous; anything beyond it indicates a misbehaving server.
const MaxResponseSize = 64 << 20 // 64 MiB

// ReadResponse reads an HTTP response body up to MaxResponseSize bytes.
// Use this instead of bare io.ReadAll so that a malfunctioning server
// cannot exhaust memory.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
