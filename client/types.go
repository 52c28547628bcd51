// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"time"

	"github.com/google/uuid"
)

// AuthTokens is the backend's login response.
type AuthTokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the authenticated user's account info.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	IsVerified  bool      `json:"is_verified"`
}

// Project is the top-level resource. It owns a single configuration
// document containing the workflow, state, transition, and image arrays.
type Project struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Configuration  Configuration `json:"configuration"`
	Version        int           `json:"version"`
	OwnerID        uuid.UUID     `json:"owner_id"`
	OrganizationID *uuid.UUID    `json:"organization_id"`
	IsPublic       bool          `json:"is_public"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ProjectCreate is the request payload for creating a project.
type ProjectCreate struct {
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
}

// ProjectUpdate is the request payload for updating a project. Nil
// fields are omitted so the backend leaves them unchanged.
// Configuration is a pointer so that a present-but-empty document is
// still serialized: replacing the configuration with {} is a valid
// operation, distinct from not touching it.
type ProjectUpdate struct {
	Name          *string        `json:"name,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Configuration *Configuration `json:"configuration,omitempty"`
}

// Configuration is a project's nested JSON document. The adapter models
// only the four record arrays; every other field round-trips untouched.
type Configuration map[string]any

// Names of the record arrays inside a configuration document.
const (
	FieldWorkflows   = "workflows"
	FieldStates      = "states"
	FieldTransitions = "transitions"
	FieldImages      = "images"
)

// clone returns a shallow copy of the configuration. Array values are
// shared with the original, matching the document's read-modify-write
// contract: each mutation rebuilds the one array it touches and leaves
// the rest aliased.
func (c Configuration) clone() Configuration {
	copied := make(Configuration, len(c))
	for key, value := range c {
		copied[key] = value
	}
	return copied
}

// Array returns the named record array, or nil when the field is
// absent or not an array.
func (c Configuration) Array(field string) []any {
	items, _ := c[field].([]any)
	return items
}

// Record is one element of a configuration array: a required string
// identifier plus an open bag of backend-defined fields the adapter
// does not model. Unknown fields round-trip untouched.
type Record struct {
	ID     string
	Fields map[string]any
}

// recordOf interprets a configuration array element as a Record.
// Returns false when the element is not a JSON object.
func recordOf(element any) (Record, bool) {
	object, ok := element.(map[string]any)
	if !ok {
		return Record{}, false
	}
	record := Record{Fields: make(map[string]any, len(object))}
	for key, value := range object {
		if key == "id" {
			record.ID, _ = value.(string)
			continue
		}
		record.Fields[key] = value
	}
	return record, true
}

// asMap serializes the record back to the configuration array element
// shape, with the id alongside the extension fields.
func (r Record) asMap() map[string]any {
	object := make(map[string]any, len(r.Fields)+1)
	for key, value := range r.Fields {
		object[key] = value
	}
	object["id"] = r.ID
	return object
}

// String returns the string value of a backend-defined field, or ""
// when absent or not a string.
func (r Record) String(field string) string {
	value, _ := r.Fields[field].(string)
	return value
}

// Bool returns the boolean value of a backend-defined field, or false
// when absent or not a boolean.
func (r Record) Bool(field string) bool {
	value, _ := r.Fields[field].(bool)
	return value
}

// Slice returns the array value of a backend-defined field, or nil when
// absent or not an array.
func (r Record) Slice(field string) []any {
	value, _ := r.Fields[field].([]any)
	return value
}
