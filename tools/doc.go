// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools defines the assistant-callable tool catalog and the
// router that dispatches calls to it.
//
// Tools are grouped by concern: authentication, projects,
// configuration records (workflows, states, images), transitions,
// execution, capture sessions, and variables. Every group except
// authentication sits behind the router's authentication gate, which
// auto-logs-in when credentials are configured.
//
// Each tool declares its input as a Go struct; the JSON Schema the MCP
// client sees is derived from the struct's tags, and the router
// validates required properties against that same schema before the
// handler runs.
package tools
