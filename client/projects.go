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

const projectsPath = "/api/v1/projects"

// ListProjectsOptions filters and paginates ListProjects. The zero
// value lists the first DefaultProjectLimit projects across all
// organizations.
type ListProjectsOptions struct {
	OrganizationID *uuid.UUID
	Skip           int
	Limit          int
}

// DefaultProjectLimit is the page size used when ListProjectsOptions
// leaves Limit at zero.
const DefaultProjectLimit = 100

// ListProjects returns the projects accessible to the authenticated
// user. Every call round-trips; nothing is cached or filtered locally.
func (c *Client) ListProjects(ctx context.Context, options ListProjectsOptions) ([]Project, error) {
	limit := options.Limit
	if limit <= 0 {
		limit = DefaultProjectLimit
	}
	query := url.Values{
		"skip":  {strconv.Itoa(options.Skip)},
		"limit": {strconv.Itoa(limit)},
	}
	if options.OrganizationID != nil {
		query.Set("organization_id", options.OrganizationID.String())
	}

	var projects []Project
	if err := c.requestInto(ctx, http.MethodGet, projectsPath, nil, query, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, create ProjectCreate) (*Project, error) {
	var project Project
	if err := c.requestInto(ctx, http.MethodPost, projectsPath, create, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject fetches a project, including its full configuration
// document.
func (c *Client) GetProject(ctx context.Context, projectID uuid.UUID) (*Project, error) {
	var project Project
	path := fmt.Sprintf("%s/%s", projectsPath, projectID)
	if err := c.requestInto(ctx, http.MethodGet, path, nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject updates a project's metadata or replaces its
// configuration document. The configuration, when present, is sent as a
// full replacement — the backend does not merge.
func (c *Client) UpdateProject(ctx context.Context, projectID uuid.UUID, update ProjectUpdate) (*Project, error) {
	var project Project
	path := fmt.Sprintf("%s/%s", projectsPath, projectID)
	if err := c.requestInto(ctx, http.MethodPut, path, update, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project and everything it owns.
func (c *Client) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	path := fmt.Sprintf("%s/%s", projectsPath, projectID)
	_, err := c.Request(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// ExportConfiguration exports a project's complete configuration
// (workflows, states, transitions, images, settings) for backup or
// transfer.
func (c *Client) ExportConfiguration(ctx context.Context, projectID uuid.UUID) (map[string]any, error) {
	path := fmt.Sprintf("%s/%s/export", projectsPath, projectID)
	return c.requestMap(ctx, http.MethodGet, path, nil, nil)
}

// ImportConfiguration imports a configuration into a project. When
// merge is false the existing configuration is replaced.
func (c *Client) ImportConfiguration(ctx context.Context, projectID uuid.UUID, configuration map[string]any, merge bool) (map[string]any, error) {
	path := fmt.Sprintf("%s/%s/import", projectsPath, projectID)
	payload := map[string]any{
		"configuration": configuration,
		"merge":         merge,
	}
	return c.requestMap(ctx, http.MethodPost, path, payload, nil)
}

// ValidateConfiguration validates a configuration without importing it.
// The result carries a valid flag plus any errors and warnings.
func (c *Client) ValidateConfiguration(ctx context.Context, configuration map[string]any) (map[string]any, error) {
	return c.requestMap(ctx, http.MethodPost, projectsPath+"/validate", configuration, nil)
}
