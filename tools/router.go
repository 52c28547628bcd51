// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
)

// Router dispatches tool calls: it resolves the tool by name, enforces
// the authentication gate, decodes and validates arguments, and runs
// the handler. All failures come back as categorized *toolerror.Error
// values so the MCP layer can attach structured error metadata.
type Router struct {
	registry *Registry
	client   *client.Client
	logger   *slog.Logger
}

// NewRouter creates a router over the registry and client.
func NewRouter(registry *Registry, c *client.Client, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{registry: registry, client: c, logger: logger}
}

// Registry returns the router's tool registry.
func (r *Router) Registry() *Registry { return r.registry }

// Call runs a tool by name with raw JSON arguments. The result map is
// the tool's response envelope. A non-nil error means the call failed —
// before execution (unknown tool, auth gate, bad arguments) or during
// it — and is always a categorized *toolerror.Error.
func (r *Router) Call(ctx context.Context, name string, arguments json.RawMessage) (result map[string]any, err error) {
	tool, ok := r.registry.Lookup(name)
	if !ok {
		return nil, toolerror.Validation("Unknown tool: %s", name)
	}

	r.logger.Info("tool call", "tool", name)

	if tool.RequiresAuth {
		if err := r.ensureAuthenticated(ctx); err != nil {
			return nil, err
		}
	}

	// Zero the closure-captured params struct so state from a previous
	// call does not bleed through, then overlay the JSON arguments.
	params := tool.Params()
	reflect.ValueOf(params).Elem().SetZero()
	if len(arguments) > 0 && string(arguments) != "null" {
		if err := json.Unmarshal(arguments, params); err != nil {
			return nil, toolerror.Validation("invalid arguments: %v", err)
		}
	}

	if err := r.validateRequired(name, arguments); err != nil {
		return nil, err
	}

	// A handler panic must not take down the stdio server; the client
	// would see the process die mid-conversation.
	defer func() {
		if panicked := recover(); panicked != nil {
			r.logger.Error("tool panicked", "tool", name, "panic", panicked)
			result = nil
			err = toolerror.Internal("tool %s panicked: %v", name, panicked)
		}
	}()

	result, runErr := tool.Run(ctx)
	if runErr != nil {
		r.logger.Error("tool failed", "tool", name, "error", runErr)
		return nil, classify(runErr)
	}
	return result, nil
}

// ensureAuthenticated enforces the authentication gate. When the client
// holds no session token it attempts auto-login with configured
// credentials; without credentials the caller is told to use auth_login.
func (r *Router) ensureAuthenticated(ctx context.Context) error {
	if r.client.IsAuthenticated() {
		return nil
	}
	if r.client.Settings().HasCredentials() {
		if _, err := r.client.LoginWithSettings(ctx); err != nil {
			return toolerror.Forbidden("Not authenticated. Auto-login failed: %v", err)
		}
		r.logger.Info("auto-logged in with configured credentials")
		return nil
	}
	return toolerror.Forbidden("Not authenticated. Use auth_login first.")
}

// validateRequired checks the tool's required properties against the
// raw arguments. A property is missing when it is absent, JSON null, or
// (for string properties) the empty string.
func (r *Router) validateRequired(name string, arguments json.RawMessage) error {
	inputSchema := r.registry.Schema(name)
	if inputSchema == nil || len(inputSchema.Required) == 0 {
		return nil
	}

	raw := map[string]json.RawMessage{}
	if len(arguments) > 0 && string(arguments) != "null" {
		if err := json.Unmarshal(arguments, &raw); err != nil {
			return toolerror.Validation("invalid arguments: %v", err)
		}
	}

	for _, field := range inputSchema.Required {
		value, present := raw[field]
		if !present || string(value) == "null" {
			return toolerror.Validation("%s is required", field)
		}
		if property := inputSchema.Properties[field]; property != nil && property.Type == "string" && string(value) == `""` {
			return toolerror.Validation("%s is required", field)
		}
	}
	return nil
}

// classify wraps a handler error in a category for the MCP errorInfo
// extension. Already-categorized errors pass through; the client's
// typed errors map by kind, with APIError split by status code.
func classify(err error) error {
	var toolErr *toolerror.Error
	if errors.As(err, &toolErr) {
		return toolErr
	}

	var authErr *client.AuthenticationError
	if errors.As(err, &authErr) {
		return &toolerror.Error{Category: toolerror.CategoryForbidden, Err: err}
	}
	var notFoundErr *client.NotFoundError
	if errors.As(err, &notFoundErr) {
		return &toolerror.Error{Category: toolerror.CategoryNotFound, Err: err}
	}
	var validationErr *client.ValidationError
	if errors.As(err, &validationErr) {
		return &toolerror.Error{Category: toolerror.CategoryValidation, Err: err}
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusConflict:
			return &toolerror.Error{Category: toolerror.CategoryConflict, Err: err}
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return &toolerror.Error{Category: toolerror.CategoryTransient, Err: err}
		default:
			return &toolerror.Error{Category: toolerror.CategoryInternal, Err: err}
		}
	}
	var requestErr *client.RequestError
	if errors.As(err, &requestErr) {
		return &toolerror.Error{Category: toolerror.CategoryTransient, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &toolerror.Error{Category: toolerror.CategoryTransient, Err: err}
	}

	return &toolerror.Error{Category: toolerror.CategoryInternal, Err: err}
}
