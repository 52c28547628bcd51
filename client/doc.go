// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

// Package client is the HTTP client for the Qontinui web backend. It
// covers the slice of the REST API the MCP tools need: session
// management, project CRUD, configuration record operations, workflow
// execution, capture sessions, and automation variables.
//
// The client is deliberately thin. It does not cache, retry, or
// paginate; every call is one round trip and failures surface
// immediately as the typed errors in this package. Configuration
// record mutations follow the backend's read-modify-write contract and
// inherit its last-write-wins behavior, documented in
// configuration.go.
package client
