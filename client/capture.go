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

// Capture sessions record user demonstrations (screenshots plus input
// actions) that the backend analyzes into learned workflows.

const capturePath = "/api/v1/capture"

// CreateCaptureSession starts a new recording session in a project.
func (c *Client) CreateCaptureSession(ctx context.Context, projectID uuid.UUID, name, description string) (map[string]any, error) {
	path := fmt.Sprintf("%s/projects/%s/capture-sessions", capturePath, projectID)
	payload := map[string]any{"name": name}
	if description != "" {
		payload["description"] = description
	}
	return c.requestMap(ctx, http.MethodPost, path, payload, nil)
}

// ListCaptureSessions lists a project's capture sessions, optionally
// filtered by status. A limit of zero lists the backend default of 50.
func (c *Client) ListCaptureSessions(ctx context.Context, projectID uuid.UUID, status string, limit int) ([]any, error) {
	if limit <= 0 {
		limit = 50
	}
	query := url.Values{
		"project_id": {projectID.String()},
		"limit":      {strconv.Itoa(limit)},
	}
	if status != "" {
		query.Set("status", status)
	}
	body, err := c.Request(ctx, http.MethodGet, capturePath+"/capture-sessions", nil, query)
	if err != nil {
		return nil, err
	}
	return listResult(body, "sessions"), nil
}

// GetCaptureSession fetches one capture session with its screenshots
// and recorded actions.
func (c *Client) GetCaptureSession(ctx context.Context, sessionID uuid.UUID) (map[string]any, error) {
	path := fmt.Sprintf("%s/capture-sessions/%s", capturePath, sessionID)
	return c.requestMap(ctx, http.MethodGet, path, nil, nil)
}

// UploadCaptureScreenshot attaches a base64-encoded screenshot to a
// capture session. timestamp may be empty.
func (c *Client) UploadCaptureScreenshot(ctx context.Context, sessionID uuid.UUID, imageData string, width, height int, timestamp string) (map[string]any, error) {
	path := fmt.Sprintf("%s/capture-sessions/%s/screenshots", capturePath, sessionID)
	payload := map[string]any{
		"image_data": imageData,
		"width":      width,
		"height":     height,
	}
	if timestamp != "" {
		payload["timestamp"] = timestamp
	}
	return c.requestMap(ctx, http.MethodPost, path, payload, nil)
}

// AddCaptureAction records a user input action against a screenshot in
// a capture session. action carries the action_type plus whichever
// coordinate/text/key fields apply to it.
func (c *Client) AddCaptureAction(ctx context.Context, sessionID uuid.UUID, action map[string]any) (map[string]any, error) {
	path := fmt.Sprintf("%s/capture-sessions/%s/actions", capturePath, sessionID)
	return c.requestMap(ctx, http.MethodPost, path, action, nil)
}

// CompleteCaptureSession marks a session as finished recording, making
// it eligible for workflow generation.
func (c *Client) CompleteCaptureSession(ctx context.Context, sessionID uuid.UUID) (map[string]any, error) {
	path := fmt.Sprintf("%s/capture-sessions/%s/complete", capturePath, sessionID)
	return c.requestMap(ctx, http.MethodPost, path, nil, nil)
}

// GenerateWorkflowFromCapture asks the backend to analyze a completed
// capture session into a learned workflow. workflowName may be empty.
func (c *Client) GenerateWorkflowFromCapture(ctx context.Context, sessionID uuid.UUID, workflowName string) (map[string]any, error) {
	path := fmt.Sprintf("%s/capture-sessions/%s/learned-workflows", capturePath, sessionID)
	payload := map[string]any{}
	if workflowName != "" {
		payload["name"] = workflowName
	}
	return c.requestMap(ctx, http.MethodPost, path, payload, nil)
}

// ListLearnedWorkflows lists a project's learned workflows, optionally
// filtered by review status.
func (c *Client) ListLearnedWorkflows(ctx context.Context, projectID uuid.UUID, status string) ([]any, error) {
	path := fmt.Sprintf("%s/projects/%s/learned-workflows", capturePath, projectID)
	var query url.Values
	if status != "" {
		query = url.Values{"status": {status}}
	}
	body, err := c.Request(ctx, http.MethodGet, path, nil, query)
	if err != nil {
		return nil, err
	}
	return listResult(body, "workflows"), nil
}

// ApproveLearnedWorkflow approves a learned workflow; when publish is
// true the backend also adds it to the project configuration.
func (c *Client) ApproveLearnedWorkflow(ctx context.Context, workflowID uuid.UUID, publish bool) (map[string]any, error) {
	path := fmt.Sprintf("%s/learned-workflows/%s/approve", capturePath, workflowID)
	return c.requestMap(ctx, http.MethodPost, path, map[string]any{"publish": publish}, nil)
}
