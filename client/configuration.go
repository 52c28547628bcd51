// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/google/uuid"
)

// Record operations on a project's configuration document. Each
// mutation is a read-modify-write sequence: fetch the project, rebuild
// the one array it touches, and write the whole configuration back as a
// full replacement.
//
// The backend offers no version or ETag precondition on the
// configuration document, so these operations are not atomic with
// respect to concurrent callers: two mutations against the same project
// can both read the same base document, and the second write silently
// discards the first. Last write wins. This is a documented property of
// the backend contract, not something the client can detect or repair.

// ListRecords returns the named array from a project's configuration,
// or an empty slice when the field is absent.
func (c *Client) ListRecords(ctx context.Context, projectID uuid.UUID, field string) ([]Record, error) {
	project, err := c.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := project.Configuration.Array(field)
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if record, ok := recordOf(item); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// AddRecord appends a record to the named array and writes the
// configuration back. No duplicate-id check is performed; record
// identifiers are unique by construction (random suffix), not by
// verification.
func (c *Client) AddRecord(ctx context.Context, projectID uuid.UUID, field string, record Record) (*Project, error) {
	project, err := c.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	configuration := project.Configuration.clone()
	items := configuration.Array(field)
	configuration[field] = append(items, record.asMap())

	return c.UpdateProject(ctx, projectID, ProjectUpdate{Configuration: &configuration})
}

// UpdateRecord replaces the first record in the named array whose id
// matches. Only whole-record replacement is supported here; callers
// merge partial updates into the fetched record first. When no record
// matches, the operation fails with *NotFoundError before any write.
func (c *Client) UpdateRecord(ctx context.Context, projectID uuid.UUID, field, recordID string, record Record) (*Project, error) {
	project, err := c.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	configuration := project.Configuration.clone()
	items := configuration.Array(field)

	found := false
	for i, item := range items {
		if existing, ok := recordOf(item); ok && existing.ID == recordID {
			items[i] = record.asMap()
			found = true
			break
		}
	}
	if !found {
		return nil, &NotFoundError{Message: field + " record not found: " + recordID}
	}

	configuration[field] = items
	return c.UpdateProject(ctx, projectID, ProjectUpdate{Configuration: &configuration})
}

// DeleteRecord rebuilds the named array excluding any record whose id
// matches, and reports whether anything was removed. Deleting a
// nonexistent id is a silent no-op at this layer — the configuration is
// written back unchanged and removed is false. Callers that need to
// treat the no-op as a failure check the removed flag.
func (c *Client) DeleteRecord(ctx context.Context, projectID uuid.UUID, field, recordID string) (project *Project, removed bool, err error) {
	fetched, err := c.GetProject(ctx, projectID)
	if err != nil {
		return nil, false, err
	}

	configuration := fetched.Configuration.clone()
	items := configuration.Array(field)

	kept := make([]any, 0, len(items))
	for _, item := range items {
		if existing, ok := recordOf(item); ok && existing.ID == recordID {
			continue
		}
		kept = append(kept, item)
	}
	removed = len(kept) != len(items)
	configuration[field] = kept

	updated, err := c.UpdateProject(ctx, projectID, ProjectUpdate{Configuration: &configuration})
	if err != nil {
		return nil, false, err
	}
	return updated, removed, nil
}
