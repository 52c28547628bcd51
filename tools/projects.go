// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
)

func projectTools(c *client.Client) []*Tool {
	return []*Tool{
		listProjectsTool(c),
		createProjectTool(c),
		getProjectTool(c),
		updateProjectTool(c),
		deleteProjectTool(c),
	}
}

// parseUUID validates a UUID-typed argument, naming the argument in the
// error so the caller knows which one to fix.
func parseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, toolerror.Validation("invalid %s: %v", field, err)
	}
	return id, nil
}

func listProjectsTool(c *client.Client) *Tool {
	var params struct {
		OrganizationID string `json:"organization_id" desc:"Optional organization UUID to filter by"`
		Limit          int    `json:"limit" desc:"Maximum number of projects to return" default:"100"`
	}
	return &Tool{
		Name: "list_projects",
		Description: "List all projects accessible to the authenticated user. " +
			"Returns project metadata including ID, name, description, and timestamps.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			options := client.ListProjectsOptions{Limit: params.Limit}
			if params.OrganizationID != "" {
				orgID, err := parseUUID("organization_id", params.OrganizationID)
				if err != nil {
					return nil, err
				}
				options.OrganizationID = &orgID
			}

			projects, err := c.ListProjects(ctx, options)
			if err != nil {
				return nil, err
			}

			summaries := make([]map[string]any, 0, len(projects))
			for _, p := range projects {
				summaries = append(summaries, map[string]any{
					"id":             p.ID.String(),
					"name":           p.Name,
					"description":    p.Description,
					"version":        p.Version,
					"created_at":     p.CreatedAt.Format(time.RFC3339),
					"updated_at":     p.UpdatedAt.Format(time.RFC3339),
					"workflow_count": len(p.Configuration.Array(client.FieldWorkflows)),
					"state_count":    len(p.Configuration.Array(client.FieldStates)),
				})
			}
			return map[string]any{
				"success":  true,
				"count":    len(projects),
				"projects": summaries,
			}, nil
		},
	}
}

func createProjectTool(c *client.Client) *Tool {
	var params struct {
		Name           string `json:"name" desc:"Project name" required:"true"`
		Description    string `json:"description" desc:"Optional project description"`
		OrganizationID string `json:"organization_id" desc:"Optional organization UUID to create project in"`
	}
	return &Tool{
		Name: "create_project",
		Description: "Create a new Qontinui project. " +
			"Projects contain workflows, states, images, and automation configuration.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			create := client.ProjectCreate{
				Name:        params.Name,
				Description: params.Description,
			}
			if params.OrganizationID != "" {
				orgID, err := parseUUID("organization_id", params.OrganizationID)
				if err != nil {
					return nil, err
				}
				create.OrganizationID = &orgID
			}

			project, err := c.CreateProject(ctx, create)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Created project '" + project.Name + "'",
				"project": map[string]any{
					"id":          project.ID.String(),
					"name":        project.Name,
					"description": project.Description,
					"created_at":  project.CreatedAt.Format(time.RFC3339),
				},
			}, nil
		},
	}
}

func getProjectTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
	}
	return &Tool{
		Name: "get_project",
		Description: "Get detailed information about a project including its full configuration. " +
			"Use this to inspect workflows, states, images, and settings.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			project, err := c.GetProject(ctx, projectID)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"project": map[string]any{
					"id":            project.ID.String(),
					"name":          project.Name,
					"description":   project.Description,
					"version":       project.Version,
					"created_at":    project.CreatedAt.Format(time.RFC3339),
					"updated_at":    project.UpdatedAt.Format(time.RFC3339),
					"configuration": map[string]any(project.Configuration),
				},
			}, nil
		},
	}
}

func updateProjectTool(c *client.Client) *Tool {
	var params struct {
		ProjectID     string         `json:"project_id" desc:"Project UUID" required:"true"`
		Name          *string        `json:"name" desc:"New project name"`
		Description   *string        `json:"description" desc:"New project description"`
		Configuration map[string]any `json:"configuration" desc:"Full configuration object to replace existing"`
	}
	return &Tool{
		Name: "update_project",
		Description: "Update a project's metadata or configuration. " +
			"Can update name, description, or the full configuration object.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			update := client.ProjectUpdate{
				Name:        params.Name,
				Description: params.Description,
			}
			// An explicitly supplied empty object replaces the stored
			// configuration with {}; only an absent argument leaves it
			// untouched.
			if params.Configuration != nil {
				configuration := client.Configuration(params.Configuration)
				update.Configuration = &configuration
			}
			project, err := c.UpdateProject(ctx, projectID, update)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Updated project '" + project.Name + "'",
				"project": map[string]any{
					"id":          project.ID.String(),
					"name":        project.Name,
					"description": project.Description,
					"version":     project.Version,
					"updated_at":  project.UpdatedAt.Format(time.RFC3339),
				},
			}, nil
		},
	}
}

func deleteProjectTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID to delete" required:"true"`
	}
	return &Tool{
		Name: "delete_project",
		Description: "Delete a project and all its contents. " +
			"This action is irreversible.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			if err := c.DeleteProject(ctx, projectID); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Deleted project " + params.ProjectID,
			}, nil
		},
	}
}
