// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// Variable endpoints are project-scoped: every path carries the owning
// project's id alongside the variable's own id.

const variablesPath = "/api/v1/variables/projects"

// ListVariables lists a project's automation variables, optionally
// filtered by scope ("global" or "workflow") and workflow id.
func (c *Client) ListVariables(ctx context.Context, projectID uuid.UUID, scope, workflowID string) ([]any, error) {
	path := fmt.Sprintf("%s/%s/variables", variablesPath, projectID)
	query := url.Values{}
	if scope != "" {
		query.Set("scope", scope)
	}
	if workflowID != "" {
		query.Set("workflow_id", workflowID)
	}
	if len(query) == 0 {
		query = nil
	}
	body, err := c.Request(ctx, http.MethodGet, path, nil, query)
	if err != nil {
		return nil, err
	}
	return listResult(body, "variables"), nil
}

// CreateVariable creates a variable in a project. workflowID and
// description may be empty; scope defaults to "global" server-side when
// empty.
func (c *Client) CreateVariable(ctx context.Context, projectID uuid.UUID, name string, value any, scope, workflowID, description string) (map[string]any, error) {
	path := fmt.Sprintf("%s/%s/variables", variablesPath, projectID)
	payload := map[string]any{
		"name":  name,
		"value": value,
	}
	if scope != "" {
		payload["scope"] = scope
	}
	if workflowID != "" {
		payload["workflow_id"] = workflowID
	}
	if description != "" {
		payload["description"] = description
	}
	return c.requestMap(ctx, http.MethodPost, path, payload, nil)
}

// GetVariable fetches one variable with its current value.
func (c *Client) GetVariable(ctx context.Context, projectID uuid.UUID, variableID string) (map[string]any, error) {
	path := fmt.Sprintf("%s/%s/variables/%s", variablesPath, projectID, variableID)
	return c.requestMap(ctx, http.MethodGet, path, nil, nil)
}

// UpdateVariable sets a variable's value and, when non-nil, its
// description. Each update is versioned server-side into the variable's
// history.
func (c *Client) UpdateVariable(ctx context.Context, projectID uuid.UUID, variableID string, value any, description *string) (map[string]any, error) {
	path := fmt.Sprintf("%s/%s/variables/%s", variablesPath, projectID, variableID)
	payload := map[string]any{"value": value}
	if description != nil {
		payload["description"] = *description
	}
	return c.requestMap(ctx, http.MethodPut, path, payload, nil)
}

// DeleteVariable deletes a variable and its history.
func (c *Client) DeleteVariable(ctx context.Context, projectID uuid.UUID, variableID string) error {
	path := fmt.Sprintf("%s/%s/variables/%s", variablesPath, projectID, variableID)
	_, err := c.Request(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// VariableHistory returns a variable's most recent value changes,
// newest first. A limit of zero returns the backend default of 20.
func (c *Client) VariableHistory(ctx context.Context, projectID uuid.UUID, variableID string, limit int) ([]any, error) {
	if limit <= 0 {
		limit = 20
	}
	path := fmt.Sprintf("%s/%s/variables/%s/history", variablesPath, projectID, variableID)
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	body, err := c.Request(ctx, http.MethodGet, path, nil, query)
	if err != nil {
		return nil, err
	}
	return listResult(body, "history"), nil
}
