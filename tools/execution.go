// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/qontinui/qontinui-web-mcp/client"
)

func executionTools(c *client.Client) []*Tool {
	return []*Tool{
		executeWorkflowTool(c),
		getExecutionStatusTool(c),
		cancelExecutionTool(c),
	}
}

func executeWorkflowTool(c *client.Client) *Tool {
	var params struct {
		ProjectID  string         `json:"project_id" desc:"Project UUID" required:"true"`
		WorkflowID string         `json:"workflow_id" desc:"Workflow ID to execute" required:"true"`
		RunnerID   string         `json:"runner_id" desc:"Optional runner device ID (uses first available if not specified)"`
		Variables  map[string]any `json:"variables" desc:"Optional runtime variables to pass to the workflow"`
	}
	return &Tool{
		Name: "execute_workflow",
		Description: "Execute a workflow on a connected desktop runner. " +
			"Requires an active runner connection. " +
			"Returns an automation session ID to track progress.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			session, err := c.ExecuteWorkflow(ctx, projectID, params.WorkflowID, params.RunnerID, params.Variables)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Workflow execution started",
				"session": session,
			}, nil
		},
	}
}

func getExecutionStatusTool(c *client.Client) *Tool {
	var params struct {
		SessionID string `json:"session_id" desc:"Automation session UUID" required:"true"`
	}
	return &Tool{
		Name: "get_execution_status",
		Description: "Get the status of an automation execution. " +
			"Returns progress, logs, and screenshots.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			sessionID, err := parseUUID("session_id", params.SessionID)
			if err != nil {
				return nil, err
			}
			status, err := c.ExecutionStatus(ctx, sessionID)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"status":  status,
			}, nil
		},
	}
}

func cancelExecutionTool(c *client.Client) *Tool {
	var params struct {
		SessionID string `json:"session_id" desc:"Automation session UUID to cancel" required:"true"`
	}
	return &Tool{
		Name:         "cancel_execution",
		Description:  "Cancel a running automation execution.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			sessionID, err := parseUUID("session_id", params.SessionID)
			if err != nil {
				return nil, err
			}
			result, err := c.CancelExecution(ctx, sessionID)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Execution cancelled",
				"result":  result,
			}, nil
		},
	}
}
