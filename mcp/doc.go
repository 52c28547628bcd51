// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp implements the Model Context Protocol server: JSON-RPC
// 2.0 over newline-delimited stdio, exposing the tool catalog to AI
// assistants.
//
// The server handles initialize, ping, tools/list, and tools/call.
// Tool failures are returned as isError tool results (with structured
// errorInfo metadata), not JSON-RPC errors, so an assistant can recover
// within the same session.
package mcp
