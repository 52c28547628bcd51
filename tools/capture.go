// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
)

// captureTools cover the recording-to-workflow pipeline: record a
// session of screenshots and actions, complete it, generate a learned
// workflow from the recording, then review and approve the result.
func captureTools(c *client.Client) []*Tool {
	return []*Tool{
		createCaptureSessionTool(c),
		listCaptureSessionsTool(c),
		getCaptureSessionTool(c),
		uploadCaptureScreenshotTool(c),
		addCaptureActionTool(c),
		completeCaptureSessionTool(c),
		generateWorkflowFromCaptureTool(c),
		listLearnedWorkflowsTool(c),
		approveLearnedWorkflowTool(c),
	}
}

func createCaptureSessionTool(c *client.Client) *Tool {
	var params struct {
		ProjectID   string `json:"project_id" desc:"Project UUID to create session in" required:"true"`
		Name        string `json:"name" desc:"Session name" required:"true"`
		Description string `json:"description" desc:"Optional session description"`
	}
	return &Tool{
		Name: "create_capture_session",
		Description: "Create a new capture session to record user actions. " +
			"Capture sessions are used to learn workflows from demonstrations. " +
			"After creating a session, upload screenshots and actions, " +
			"then complete the session to generate a workflow.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			session, err := c.CreateCaptureSession(ctx, projectID, params.Name, params.Description)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Created capture session '" + params.Name + "'",
				"session": session,
			}, nil
		},
	}
}

func listCaptureSessionsTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
		Status    string `json:"status" desc:"Filter by status" enum:"capturing,uploading,analyzing,completed,failed"`
		Limit     int    `json:"limit" desc:"Maximum number of sessions to return" default:"50"`
	}
	return &Tool{
		Name:         "list_capture_sessions",
		Description:  "List capture sessions for a project.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			sessions, err := c.ListCaptureSessions(ctx, projectID, params.Status, params.Limit)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":  true,
				"sessions": sessions,
			}, nil
		},
	}
}

func getCaptureSessionTool(c *client.Client) *Tool {
	var params struct {
		SessionID string `json:"session_id" desc:"Capture session UUID" required:"true"`
	}
	return &Tool{
		Name:         "get_capture_session",
		Description:  "Get details of a capture session including screenshots and actions.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			sessionID, err := parseUUID("session_id", params.SessionID)
			if err != nil {
				return nil, err
			}
			session, err := c.GetCaptureSession(ctx, sessionID)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"session": session,
			}, nil
		},
	}
}

func uploadCaptureScreenshotTool(c *client.Client) *Tool {
	var params struct {
		SessionID string `json:"session_id" desc:"Capture session UUID" required:"true"`
		ImageData string `json:"image_data" desc:"Base64-encoded screenshot image" required:"true"`
		Width     int    `json:"width" desc:"Image width in pixels" required:"true"`
		Height    int    `json:"height" desc:"Image height in pixels" required:"true"`
		Timestamp string `json:"timestamp" desc:"ISO timestamp when screenshot was taken"`
	}
	return &Tool{
		Name: "upload_capture_screenshot",
		Description: "Upload a screenshot to a capture session. " +
			"Screenshots document the UI state during the recording.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			sessionID, err := parseUUID("session_id", params.SessionID)
			if err != nil {
				return nil, err
			}
			if params.Width <= 0 || params.Height <= 0 {
				return nil, toolerror.Validation("width and height must be positive")
			}
			screenshot, err := c.UploadCaptureScreenshot(ctx, sessionID, params.ImageData, params.Width, params.Height, params.Timestamp)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":    true,
				"message":    "Screenshot uploaded",
				"screenshot": screenshot,
			}, nil
		},
	}
}

func addCaptureActionTool(c *client.Client) *Tool {
	var params struct {
		SessionID    string `json:"session_id" desc:"Capture session UUID" required:"true"`
		ScreenshotID string `json:"screenshot_id" desc:"Screenshot UUID this action was performed on" required:"true"`
		ActionType   string `json:"action_type" desc:"Type of action" enum:"click,double_click,right_click,type,key_press,scroll" required:"true"`
		X            *int   `json:"x" desc:"X coordinate (for click actions)"`
		Y            *int   `json:"y" desc:"Y coordinate (for click actions)"`
		Text         string `json:"text" desc:"Text typed (for type actions)"`
		Key          string `json:"key" desc:"Key pressed (for key_press actions)"`
		ScrollDelta  *int   `json:"scroll_delta" desc:"Scroll amount (for scroll actions)"`
	}
	return &Tool{
		Name: "add_capture_action",
		Description: "Add a user action to a capture session. " +
			"Actions include clicks, typing, key presses, and scrolls.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			sessionID, err := parseUUID("session_id", params.SessionID)
			if err != nil {
				return nil, err
			}

			action := map[string]any{
				"screenshot_id": params.ScreenshotID,
				"action_type":   params.ActionType,
			}
			if params.X != nil {
				action["x"] = *params.X
			}
			if params.Y != nil {
				action["y"] = *params.Y
			}
			if params.Text != "" {
				action["text"] = params.Text
			}
			if params.Key != "" {
				action["key"] = params.Key
			}
			if params.ScrollDelta != nil {
				action["scroll_delta"] = *params.ScrollDelta
			}

			result, err := c.AddCaptureAction(ctx, sessionID, action)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Added " + params.ActionType + " action",
				"action":  result,
			}, nil
		},
	}
}

func completeCaptureSessionTool(c *client.Client) *Tool {
	var params struct {
		SessionID string `json:"session_id" desc:"Capture session UUID to complete" required:"true"`
	}
	return &Tool{
		Name: "complete_capture_session",
		Description: "Mark a capture session as complete and ready for analysis. " +
			"This triggers workflow generation from the recorded actions.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			sessionID, err := parseUUID("session_id", params.SessionID)
			if err != nil {
				return nil, err
			}
			session, err := c.CompleteCaptureSession(ctx, sessionID)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Capture session marked as complete",
				"session": session,
			}, nil
		},
	}
}

func generateWorkflowFromCaptureTool(c *client.Client) *Tool {
	var params struct {
		SessionID    string `json:"session_id" desc:"Capture session UUID" required:"true"`
		WorkflowName string `json:"workflow_name" desc:"Name for the generated workflow"`
	}
	return &Tool{
		Name: "generate_workflow_from_capture",
		Description: "Generate a workflow from a completed capture session. " +
			"Uses AI to analyze the recorded actions and create an automation workflow.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			sessionID, err := parseUUID("session_id", params.SessionID)
			if err != nil {
				return nil, err
			}
			learned, err := c.GenerateWorkflowFromCapture(ctx, sessionID, params.WorkflowName)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":          true,
				"message":          "Workflow generation started",
				"learned_workflow": learned,
			}, nil
		},
	}
}

func listLearnedWorkflowsTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
		Status    string `json:"status" desc:"Filter by status" enum:"draft,reviewing,approved,rejected,published"`
	}
	return &Tool{
		Name:         "list_learned_workflows",
		Description:  "List workflows learned from capture sessions.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			workflows, err := c.ListLearnedWorkflows(ctx, projectID, params.Status)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":   true,
				"workflows": workflows,
			}, nil
		},
	}
}

func approveLearnedWorkflowTool(c *client.Client) *Tool {
	var params struct {
		WorkflowID string `json:"workflow_id" desc:"Learned workflow UUID" required:"true"`
		Publish    bool   `json:"publish" desc:"Whether to publish to project configuration" default:"false"`
	}
	return &Tool{
		Name: "approve_learned_workflow",
		Description: "Approve a learned workflow and optionally publish it to the project. " +
			"Publishing adds the workflow to the project configuration.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			workflowID, err := parseUUID("workflow_id", params.WorkflowID)
			if err != nil {
				return nil, err
			}
			workflow, err := c.ApproveLearnedWorkflow(ctx, workflowID, params.Publish)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":  true,
				"message":  "Workflow approved",
				"workflow": workflow,
			}, nil
		},
	}
}
