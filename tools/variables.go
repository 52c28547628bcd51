// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
)

func variableTools(c *client.Client) []*Tool {
	return []*Tool{
		listVariablesTool(c),
		createVariableTool(c),
		getVariableTool(c),
		updateVariableTool(c),
		deleteVariableTool(c),
		getVariableHistoryTool(c),
	}
}

func listVariablesTool(c *client.Client) *Tool {
	var params struct {
		ProjectID  string `json:"project_id" desc:"Project UUID" required:"true"`
		Scope      string `json:"scope" desc:"Filter by scope" enum:"global,workflow"`
		WorkflowID string `json:"workflow_id" desc:"Filter by workflow ID (for workflow-scoped variables)"`
	}
	return &Tool{
		Name: "list_variables",
		Description: "List workflow variables in a project. " +
			"Variables can be global (project-level) or workflow-specific.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			variables, err := c.ListVariables(ctx, projectID, params.Scope, params.WorkflowID)
			if err != nil {
				return nil, err
			}
			summaries := make([]map[string]any, 0, len(variables))
			for _, v := range variables {
				variable, ok := v.(map[string]any)
				if !ok {
					continue
				}
				summaries = append(summaries, map[string]any{
					"id":          variable["id"],
					"name":        variable["name"],
					"value":       variable["value"],
					"scope":       variable["scope"],
					"workflow_id": variable["workflow_id"],
					"description": variable["description"],
				})
			}
			return map[string]any{
				"success":   true,
				"count":     len(summaries),
				"variables": summaries,
			}, nil
		},
	}
}

func createVariableTool(c *client.Client) *Tool {
	var params struct {
		ProjectID   string `json:"project_id" desc:"Project UUID" required:"true"`
		Name        string `json:"name" desc:"Variable name" required:"true"`
		Value       any    `json:"value" desc:"Variable value (any JSON-serializable type)" required:"true"`
		Scope       string `json:"scope" desc:"Variable scope" enum:"global,workflow" default:"global"`
		WorkflowID  string `json:"workflow_id" desc:"Workflow ID (required if scope is 'workflow')"`
		Description string `json:"description" desc:"Optional variable description"`
	}
	return &Tool{
		Name: "create_variable",
		Description: "Create a workflow variable. " +
			"Global variables are accessible across all workflows. " +
			"Workflow-scoped variables are only accessible within a specific workflow.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}

			scope := params.Scope
			if scope == "" {
				scope = "global"
			}
			if scope == "workflow" && params.WorkflowID == "" {
				return nil, toolerror.Validation("workflow_id is required for workflow-scoped variables")
			}

			variable, err := c.CreateVariable(ctx, projectID, params.Name, params.Value, scope, params.WorkflowID, params.Description)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":  true,
				"message":  "Created variable '" + params.Name + "'",
				"variable": variable,
			}, nil
		},
	}
}

func getVariableTool(c *client.Client) *Tool {
	var params struct {
		ProjectID  string `json:"project_id" desc:"Project UUID" required:"true"`
		VariableID string `json:"variable_id" desc:"Variable ID" required:"true"`
	}
	return &Tool{
		Name:         "get_variable",
		Description:  "Get a workflow variable by ID.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			variable, err := c.GetVariable(ctx, projectID, params.VariableID)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":  true,
				"variable": variable,
			}, nil
		},
	}
}

func updateVariableTool(c *client.Client) *Tool {
	var params struct {
		ProjectID   string  `json:"project_id" desc:"Project UUID" required:"true"`
		VariableID  string  `json:"variable_id" desc:"Variable ID" required:"true"`
		Value       any     `json:"value" desc:"New variable value" required:"true"`
		Description *string `json:"description" desc:"New description"`
	}
	return &Tool{
		Name:         "update_variable",
		Description:  "Update a workflow variable's value.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			variable, err := c.UpdateVariable(ctx, projectID, params.VariableID, params.Value, params.Description)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":  true,
				"message":  "Variable updated",
				"variable": variable,
			}, nil
		},
	}
}

func deleteVariableTool(c *client.Client) *Tool {
	var params struct {
		ProjectID  string `json:"project_id" desc:"Project UUID" required:"true"`
		VariableID string `json:"variable_id" desc:"Variable ID to delete" required:"true"`
	}
	return &Tool{
		Name:         "delete_variable",
		Description:  "Delete a workflow variable.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			if err := c.DeleteVariable(ctx, projectID, params.VariableID); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Deleted variable " + params.VariableID,
			}, nil
		},
	}
}

func getVariableHistoryTool(c *client.Client) *Tool {
	var params struct {
		ProjectID  string `json:"project_id" desc:"Project UUID" required:"true"`
		VariableID string `json:"variable_id" desc:"Variable ID" required:"true"`
		Limit      int    `json:"limit" desc:"Maximum number of history entries to return" default:"20"`
	}
	return &Tool{
		Name: "get_variable_history",
		Description: "Get the change history for a variable. " +
			"Shows previous values and when they were changed.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			history, err := c.VariableHistory(ctx, projectID, params.VariableID, params.Limit)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"history": history,
			}, nil
		},
	}
}
