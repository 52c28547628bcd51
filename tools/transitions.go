// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
)

// transitionTools manage the transitions array of a project's
// configuration. Transitions connect states in the state machine and
// name the workflows that run during each state change.
func transitionTools(c *client.Client) []*Tool {
	return []*Tool{
		listTransitionsTool(c),
		createTransitionTool(c),
		updateTransitionTool(c),
		deleteTransitionTool(c),
	}
}

func listTransitionsTool(c *client.Client) *Tool {
	var params struct {
		ProjectID string `json:"project_id" desc:"Project UUID" required:"true"`
	}
	return &Tool{
		Name: "list_transitions",
		Description: "List all state transitions in a project. " +
			"Transitions define how the automation moves between UI states.",
		RequiresAuth: true,
		ReadOnly:     true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			transitions, err := c.ListRecords(ctx, projectID, client.FieldTransitions)
			if err != nil {
				return nil, err
			}
			summaries := make([]map[string]any, 0, len(transitions))
			for _, t := range transitions {
				transitionType := t.String("type")
				if transitionType == "" {
					transitionType = "action"
				}
				workflows := t.Slice("processes")
				if workflows == nil {
					workflows = []any{}
				}
				summaries = append(summaries, map[string]any{
					"id":          t.ID,
					"name":        t.String("name"),
					"type":        transitionType,
					"from_state":  t.Fields["fromState"],
					"to_state":    t.Fields["toState"],
					"workflows":   workflows,
					"timeout":     t.Fields["timeout"],
					"retry_count": t.Fields["retryCount"],
				})
			}
			return map[string]any{
				"success":     true,
				"count":       len(transitions),
				"transitions": summaries,
			}, nil
		},
	}
}

func createTransitionTool(c *client.Client) *Tool {
	var params struct {
		ProjectID  string   `json:"project_id" desc:"Project UUID" required:"true"`
		Name       string   `json:"name" desc:"Transition name" required:"true"`
		FromState  string   `json:"from_state" desc:"Source state ID" required:"true"`
		ToState    string   `json:"to_state" desc:"Target state ID" required:"true"`
		Workflows  []string `json:"workflows" desc:"Workflow IDs to execute during transition"`
		Type       string   `json:"type" desc:"Transition type" enum:"action,automatic,conditional" default:"action"`
		Timeout    *int     `json:"timeout" desc:"Timeout in milliseconds" default:"10000"`
		RetryCount *int     `json:"retry_count" desc:"Number of retries on failure" default:"3"`
	}
	return &Tool{
		Name: "create_transition",
		Description: "Create a state transition. " +
			"Transitions connect a source state to a target state " +
			"and specify which workflows execute during the transition.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}

			transitionType := params.Type
			if transitionType == "" {
				transitionType = "action"
			}
			// Pointer params default only when absent; an explicit 0 is
			// kept as supplied.
			timeout := 10000
			if params.Timeout != nil {
				timeout = *params.Timeout
			}
			retryCount := 3
			if params.RetryCount != nil {
				retryCount = *params.RetryCount
			}
			workflows := make([]any, 0, len(params.Workflows))
			for _, id := range params.Workflows {
				workflows = append(workflows, id)
			}

			transition := client.Record{
				ID: newID("transition"),
				Fields: map[string]any{
					"type":             transitionType,
					"name":             params.Name,
					"processes":        workflows,
					"fromState":        params.FromState,
					"toState":          params.ToState,
					"staysVisible":     false,
					"activateStates":   []any{},
					"deactivateStates": []any{},
					"timeout":          timeout,
					"retryCount":       retryCount,
				},
			}
			if _, err := c.AddRecord(ctx, projectID, client.FieldTransitions, transition); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Created transition '" + params.Name + "'",
				"transition": map[string]any{
					"id":         transition.ID,
					"name":       params.Name,
					"from_state": params.FromState,
					"to_state":   params.ToState,
				},
			}, nil
		},
	}
}

func updateTransitionTool(c *client.Client) *Tool {
	var params struct {
		ProjectID    string    `json:"project_id" desc:"Project UUID" required:"true"`
		TransitionID string    `json:"transition_id" desc:"Transition ID to update" required:"true"`
		Name         *string   `json:"name" desc:"New transition name"`
		FromState    *string   `json:"from_state" desc:"New source state ID"`
		ToState      *string   `json:"to_state" desc:"New target state ID"`
		Workflows    *[]string `json:"workflows" desc:"New workflow IDs"`
		Timeout      *int      `json:"timeout" desc:"New timeout in milliseconds"`
		RetryCount   *int      `json:"retry_count" desc:"New retry count"`
	}
	return &Tool{
		Name:         "update_transition",
		Description:  "Update a state transition.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}

			transitions, err := c.ListRecords(ctx, projectID, client.FieldTransitions)
			if err != nil {
				return nil, err
			}
			existing, ok := findRecord(transitions, params.TransitionID)
			if !ok {
				return nil, toolerror.NotFound("Transition not found: %s", params.TransitionID)
			}

			if params.Name != nil {
				existing.Fields["name"] = *params.Name
			}
			if params.FromState != nil {
				existing.Fields["fromState"] = *params.FromState
			}
			if params.ToState != nil {
				existing.Fields["toState"] = *params.ToState
			}
			if params.Workflows != nil {
				workflows := make([]any, 0, len(*params.Workflows))
				for _, id := range *params.Workflows {
					workflows = append(workflows, id)
				}
				existing.Fields["processes"] = workflows
			}
			if params.Timeout != nil {
				existing.Fields["timeout"] = *params.Timeout
			}
			if params.RetryCount != nil {
				existing.Fields["retryCount"] = *params.RetryCount
			}

			if _, err := c.UpdateRecord(ctx, projectID, client.FieldTransitions, params.TransitionID, existing); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Updated transition " + params.TransitionID,
			}, nil
		},
	}
}

func deleteTransitionTool(c *client.Client) *Tool {
	var params struct {
		ProjectID    string `json:"project_id" desc:"Project UUID" required:"true"`
		TransitionID string `json:"transition_id" desc:"Transition ID to delete" required:"true"`
	}
	return &Tool{
		Name:         "delete_transition",
		Description:  "Delete a state transition.",
		RequiresAuth: true,
		Params:       func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			projectID, err := parseUUID("project_id", params.ProjectID)
			if err != nil {
				return nil, err
			}
			// Unlike workflow/state/image deletes, a missing transition
			// id is reported as a failure rather than a silent no-op.
			_, removed, err := c.DeleteRecord(ctx, projectID, client.FieldTransitions, params.TransitionID)
			if err != nil {
				return nil, err
			}
			if !removed {
				return nil, toolerror.NotFound("Transition not found: %s", params.TransitionID)
			}
			return map[string]any{
				"success": true,
				"message": "Deleted transition " + params.TransitionID,
			}, nil
		},
	}
}
