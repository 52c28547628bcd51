// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
)

// configurationTools cover export/import/validate plus the workflow,
// state, and image record operations on a project's configuration
// document.
func configurationTools(c *client.Client) []*Tool {
	return []*Tool{
		exportConfigurationTool(c),
		importConfigurationTool(c),
		validateConfigurationTool(c),
		listWorkflowsTool(c),
		createWorkflowTool(c),
		updateWorkflowTool(c),
		deleteWorkflowTool(c),
		listStatesTool(c),
		createStateTool(c),
		updateStateTool(c),
		deleteStateTool(c),
		listImagesTool(c),
		addImageTool(c),
		deleteImageTool(c),
	}
}

func exportConfigurationTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID to export" required:"true"`
	}
	return &Tool{
		Name: "export_configuration",
		Description: "Export a project's complete configuration as JSON. " +
			"Includes all workflows, states, transitions, images, and settings. " +
			"Use this for backup or to copy configuration to another project.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			configuration, err := c.ExportConfiguration(ctx, projectID)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":       true,
				"configuration": configuration,
			}, nil
		},
	}
}

func importConfigurationTool(c *client.Client) *Tool {
	var params struct {
		ProjectID     string         `json:"project_id" desc:"Project UUID to import into" required:"true"`
		Configuration map[string]any `json:"configuration" desc:"Configuration object to import" required:"true"`
		Merge         bool           `json:"merge" desc:"If true, merge with existing; if false, replace" default:"false"`
	}
	return &Tool{
		Name: "import_configuration",
		Description: "Import configuration into a project. " +
			"Can either replace existing configuration or merge with it.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			result, err := c.ImportConfiguration(ctx, projectID, params.Configuration, params.Merge)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"result":  result,
			}, nil
		},
	}
}

func validateConfigurationTool(c *client.Client) *Tool {
	var params struct {
		Configuration map[string]any `json:"configuration" desc:"Configuration object to validate" required:"true"`
	}
	return &Tool{
		Name: "validate_configuration",
		Description: "Validate a configuration without importing. " +
			"Returns validation errors and warnings.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			return c.ValidateConfiguration(ctx, params.Configuration)
		},
	}
}

// --- Workflows ---

func listWorkflowsTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
	}
	return &Tool{
		Name:         "list_workflows",
		Description:  "List all workflows in a project.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			workflows, err := c.ListRecords(ctx, projectID, client.FieldWorkflows)
			if err != nil {
				return nil, err
			}
			summaries := make([]map[string]any, 0, len(workflows))
			for _, w := range workflows {
				summaries = append(summaries, map[string]any{
					"id":           w.ID,
					"name":         w.String("name"),
					"action_count": len(w.Slice("actions")),
				})
			}
			return map[string]any{
				"success":   true,
				"count":     len(workflows),
				"workflows": summaries,
			}, nil
		},
	}
}

func createWorkflowTool(c *client.Client) *Tool {
	var params struct {
		ProjectID   string         `json:"project_id" desc:"Project UUID" required:"true"`
		Name        string         `json:"name" desc:"Workflow name" required:"true"`
		Actions     []any          `json:"actions" desc:"List of action definitions"`
		Connections map[string]any `json:"connections" desc:"Connection map between actions"`
	}
	return &Tool{
		Name: "create_workflow",
		Description: "Create a new workflow in a project. " +
			"A workflow is a sequence of actions (click, type, find, etc.) " +
			"connected in a graph structure.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}

			actions := params.Actions
			if actions == nil {
				actions = []any{}
			}
			connections := params.Connections
			if connections == nil {
				connections = map[string]any{}
			}

			workflow := client.Record{
				ID: newID("workflow"),
				Fields: map[string]any{
					"name":        params.Name,
					"version":     "1.0.0",
					"format":      "graph",
					"actions":     actions,
					"connections": connections,
					"visibility":  "public",
					"variables":   map[string]any{},
					"settings":    map[string]any{},
					"metadata":    map[string]any{},
				},
			}
			if _, err := c.AddRecord(ctx, projectID, client.FieldWorkflows, workflow); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Created workflow '" + params.Name + "'",
				"workflow": map[string]any{
					"id":   workflow.ID,
					"name": params.Name,
				},
			}, nil
		},
	}
}

func updateWorkflowTool(c *client.Client) *Tool {
	var params struct {
		ProjectID   string          `json:"project_id" desc:"Project UUID" required:"true"`
		WorkflowID  string          `json:"workflow_id" desc:"Workflow ID to update" required:"true"`
		Name        *string         `json:"name" desc:"New workflow name"`
		Actions     *[]any          `json:"actions" desc:"Updated action definitions"`
		Connections *map[string]any `json:"connections" desc:"Updated connection map"`
	}
	return &Tool{
		Name:         "update_workflow",
		Description:  "Update an existing workflow.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}

			workflows, err := c.ListRecords(ctx, projectID, client.FieldWorkflows)
			if err != nil {
				return nil, err
			}
			existing, ok := findRecord(workflows, params.WorkflowID)
			if !ok {
				return nil, toolerror.NotFound("Workflow not found: %s", params.WorkflowID)
			}

			if params.Name != nil {
				existing.Fields["name"] = *params.Name
			}
			if params.Actions != nil {
				existing.Fields["actions"] = *params.Actions
			}
			if params.Connections != nil {
				existing.Fields["connections"] = *params.Connections
			}

			if _, err := c.UpdateRecord(ctx, projectID, client.FieldWorkflows, params.WorkflowID, existing); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Updated workflow '" + existing.String("name") + "'",
			}, nil
		},
	}
}

func deleteWorkflowTool(c *client.Client) *Tool {
	var params struct {
		ProjectID  string `json:"project_id" desc:"Project UUID" required:"true"`
		WorkflowID string `json:"workflow_id" desc:"Workflow ID to delete" required:"true"`
	}
	return &Tool{
		Name:         "delete_workflow",
		Description:  "Delete a workflow from a project.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			// Deleting an unknown workflow id is a no-op: the
			// configuration is written back unchanged and the call
			// still reports success.
			if _, _, err := c.DeleteRecord(ctx, projectID, client.FieldWorkflows, params.WorkflowID); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Deleted workflow " + params.WorkflowID,
			}, nil
		},
	}
}

// --- States ---

func listStatesTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
	}
	return &Tool{
		Name:         "list_states",
		Description:  "List all UI states defined in a project.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			states, err := c.ListRecords(ctx, projectID, client.FieldStates)
			if err != nil {
				return nil, err
			}
			summaries := make([]map[string]any, 0, len(states))
			for _, s := range states {
				summaries = append(summaries, map[string]any{
					"id":          s.ID,
					"name":        s.String("name"),
					"description": s.Fields["description"],
					"is_initial":  s.Bool("isInitial"),
					"is_final":    s.Bool("isFinal"),
					"image_count": len(s.Slice("identifyingImages")),
				})
			}
			return map[string]any{
				"success": true,
				"count":   len(states),
				"states":  summaries,
			}, nil
		},
	}
}

func createStateTool(c *client.Client) *Tool {
	var params struct {
		ProjectID         string `json:"project_id" desc:"Project UUID" required:"true"`
		Name              string `json:"name" desc:"State name" required:"true"`
		Description       string `json:"description" desc:"State description"`
		IdentifyingImages []any  `json:"identifying_images" desc:"Image IDs used to identify this state"`
		IsInitial         bool   `json:"is_initial" desc:"Whether this is an initial/start state" default:"false"`
		IsFinal           bool   `json:"is_final" desc:"Whether this is a final/end state" default:"false"`
	}
	return &Tool{
		Name: "create_state",
		Description: "Create a UI state definition. " +
			"States represent recognizable UI screens identified by pattern images.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}

			identifying := params.IdentifyingImages
			if identifying == nil {
				identifying = []any{}
			}

			state := client.Record{
				ID: newID("state"),
				Fields: map[string]any{
					"name":              params.Name,
					"description":       params.Description,
					"identifyingImages": identifying,
					"position":          map[string]any{"x": 0.0, "y": 0.0},
					"isInitial":         params.IsInitial,
					"isFinal":           params.IsFinal,
				},
			}
			if _, err := c.AddRecord(ctx, projectID, client.FieldStates, state); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Created state '" + params.Name + "'",
				"state": map[string]any{
					"id":   state.ID,
					"name": params.Name,
				},
			}, nil
		},
	}
}

func updateStateTool(c *client.Client) *Tool {
	var params struct {
		ProjectID         string  `json:"project_id" desc:"Project UUID" required:"true"`
		StateID           string  `json:"state_id" desc:"State ID to update" required:"true"`
		Name              *string `json:"name" desc:"New state name"`
		Description       *string `json:"description" desc:"New description"`
		IdentifyingImages *[]any  `json:"identifying_images" desc:"Updated identifying images"`
		IsInitial         *bool   `json:"is_initial" desc:"Whether this is an initial/start state"`
		IsFinal           *bool   `json:"is_final" desc:"Whether this is a final/end state"`
	}
	return &Tool{
		Name:         "update_state",
		Description:  "Update a UI state definition.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}

			states, err := c.ListRecords(ctx, projectID, client.FieldStates)
			if err != nil {
				return nil, err
			}
			existing, ok := findRecord(states, params.StateID)
			if !ok {
				return nil, toolerror.NotFound("State not found: %s", params.StateID)
			}

			if params.Name != nil {
				existing.Fields["name"] = *params.Name
			}
			if params.Description != nil {
				existing.Fields["description"] = *params.Description
			}
			if params.IdentifyingImages != nil {
				existing.Fields["identifyingImages"] = *params.IdentifyingImages
			}
			if params.IsInitial != nil {
				existing.Fields["isInitial"] = *params.IsInitial
			}
			if params.IsFinal != nil {
				existing.Fields["isFinal"] = *params.IsFinal
			}

			if _, err := c.UpdateRecord(ctx, projectID, client.FieldStates, params.StateID, existing); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Updated state '" + existing.String("name") + "'",
			}, nil
		},
	}
}

func deleteStateTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
		StateID   string `json:"state_id" desc:"State ID to delete" required:"true"`
	}
	return &Tool{
		Name:         "delete_state",
		Description:  "Delete a UI state from a project.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			if _, _, err := c.DeleteRecord(ctx, projectID, client.FieldStates, params.StateID); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Deleted state " + params.StateID,
			}, nil
		},
	}
}

// --- Images ---

func listImagesTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
	}
	return &Tool{
		Name:         "list_images",
		Description:  "List all pattern images in a project.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			images, err := c.ListRecords(ctx, projectID, client.FieldImages)
			if err != nil {
				return nil, err
			}
			summaries := make([]map[string]any, 0, len(images))
			for _, i := range images {
				summaries = append(summaries, map[string]any{
					"id":     i.ID,
					"name":   i.String("name"),
					"format": i.Fields["format"],
					"width":  i.Fields["width"],
					"height": i.Fields["height"],
				})
			}
			return map[string]any{
				"success": true,
				"count":   len(images),
				"images":  summaries,
			}, nil
		},
	}
}

func addImageTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
		Name      string `json:"name" desc:"Image name" required:"true"`
		Data      string `json:"data" desc:"Base64-encoded image data" required:"true"`
		Format    string `json:"format" desc:"Image format (png, jpg)" default:"png"`
	}
	return &Tool{
		Name: "add_image",
		Description: "Add a pattern image to a project. " +
			"Images are used for visual pattern matching in states and actions.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}

			format := params.Format
			if format == "" {
				format = "png"
			}

			image := client.Record{
				ID: newID("img"),
				Fields: map[string]any{
					"name":   params.Name,
					"data":   params.Data,
					"format": format,
				},
			}
			if _, err := c.AddRecord(ctx, projectID, client.FieldImages, image); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Added image '" + params.Name + "'",
				"image": map[string]any{
					"id":   image.ID,
					"name": params.Name,
				},
			}, nil
		},
	}
}

func deleteImageTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
		ImageID   string `json:"image_id" desc:"Image ID to delete" required:"true"`
	}
	return &Tool{
		Name:         "delete_image",
		Description:  "Delete a pattern image from a project.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			if _, _, err := c.DeleteRecord(ctx, projectID, client.FieldImages, params.ImageID); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Deleted image " + params.ImageID,
			}, nil
		},
	}
}

// findRecord returns the record with the given id from a fetched list.
func findRecord(records []client.Record, id string) (client.Record, bool) {
	for _, record := range records {
		if record.ID == id {
			return record, true
		}
	}
	return client.Record{}, false
}
