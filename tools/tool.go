// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/schema"
	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
)

// Tool is one assistant-callable operation. Params returns the pointer
// to the tool's closure-captured parameter struct; the router zeroes it
// and overlays the caller's JSON arguments before each call, so Run
// reads the current call's arguments through the closure.
type Tool struct {
	Name        string
	Description string

	// RequiresAuth gates the tool behind a valid session. Only the
	// auth_* tools are exempt.
	RequiresAuth bool

	// ReadOnly marks tools that never modify backend state. Surfaced
	// to MCP clients as a behavioral annotation.
	ReadOnly bool

	Params func() any
	Run    func(ctx context.Context) (map[string]any, error)
}

// Registry holds the full tool catalog with input schemas derived from
// each tool's parameter struct.
type Registry struct {
	tools   []*Tool
	byName  map[string]*Tool
	schemas map[string]*schema.Schema
}

// NewRegistry builds the registry of all tools backed by the given
// client. Fails on duplicate tool names or unschematizable parameter
// structs, both of which are programming errors.
func NewRegistry(c *client.Client) (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]*Tool),
		schemas: make(map[string]*schema.Schema),
	}

	groups := [][]*Tool{
		authTools(c),
		projectTools(c),
		configurationTools(c),
		transitionTools(c),
		executionTools(c),
		captureTools(c),
		variableTools(c),
	}
	for _, group := range groups {
		for _, t := range group {
			if err := r.register(t); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func (r *Registry) register(t *Tool) error {
	if _, exists := r.byName[t.Name]; exists {
		return toolerror.Internal("duplicate tool name: %s", t.Name)
	}
	inputSchema, err := schema.Params(t.Params())
	if err != nil {
		return toolerror.Internal("tool %s: %w", t.Name, err)
	}
	r.tools = append(r.tools, t)
	r.byName[t.Name] = t
	r.schemas[t.Name] = inputSchema
	return nil
}

// Tools returns all registered tools in registration order.
func (r *Registry) Tools() []*Tool { return r.tools }

// Lookup returns the named tool.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Schema returns the input schema for the named tool, or nil when the
// tool does not exist.
func (r *Registry) Schema(name string) *schema.Schema { return r.schemas[name] }

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }
