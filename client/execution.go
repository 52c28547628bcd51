// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ExecuteWorkflow starts a workflow run on a connected desktop runner.
// When runnerID is empty the backend picks the first available runner.
// The result carries the automation session used to track progress.
func (c *Client) ExecuteWorkflow(ctx context.Context, projectID uuid.UUID, workflowID, runnerID string, variables map[string]any) (map[string]any, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	payload := map[string]any{
		"workflow_id": workflowID,
		"runner_id":   runnerID,
		"variables":   variables,
	}
	path := fmt.Sprintf("/api/v1/automation/projects/%s/execute", projectID)
	return c.requestMap(ctx, http.MethodPost, path, payload, nil)
}

// ExecutionStatus returns an automation session's progress, logs, and
// screenshots.
func (c *Client) ExecutionStatus(ctx context.Context, sessionID uuid.UUID) (map[string]any, error) {
	path := fmt.Sprintf("/api/v1/automation/sessions/%s", sessionID)
	return c.requestMap(ctx, http.MethodGet, path, nil, nil)
}

// CancelExecution cancels a running automation session.
func (c *Client) CancelExecution(ctx context.Context, sessionID uuid.UUID) (map[string]any, error) {
	path := fmt.Sprintf("/api/v1/automation/sessions/%s/cancel", sessionID)
	return c.requestMap(ctx, http.MethodPost, path, nil, nil)
}
