// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/qontinui/qontinui-web-mcp/lib/config"
)

func TestUpdateProjectEmptyConfigurationReplaces(t *testing.T) {
	projectID := uuid.New()
	var putBodies []map[string]json.RawMessage

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var body map[string]json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			putBodies = append(putBodies, body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":            projectID.String(),
			"name":          "demo",
			"configuration": map[string]any{},
			"version":       2,
			"owner_id":      uuid.New().String(),
			"created_at":    "2026-01-01T00:00:00Z",
			"updated_at":    "2026-02-01T00:00:00Z",
		})
	}
	router := newTestRouter(t, handler, func(s *config.Settings) {
		s.AccessToken = "tok"
	})

	// An explicitly supplied empty object must reach the backend: it
	// replaces the stored configuration with {}.
	_, err := router.Call(context.Background(), "update_project", callArgs(t, map[string]any{
		"project_id":    projectID.String(),
		"configuration": map[string]any{},
	}))
	if err != nil {
		t.Fatalf("update_project with empty configuration: %v", err)
	}
	if len(putBodies) != 1 {
		t.Fatalf("recorded %d PUT bodies, want 1", len(putBodies))
	}
	configuration, ok := putBodies[0]["configuration"]
	if !ok {
		t.Fatal("PUT body omitted the explicitly supplied empty configuration")
	}
	if string(configuration) != "{}" {
		t.Errorf("configuration in PUT body = %s, want {}", configuration)
	}

	// With no configuration argument the PUT body must not carry the
	// key at all, leaving the stored document untouched.
	_, err = router.Call(context.Background(), "update_project", callArgs(t, map[string]any{
		"project_id": projectID.String(),
		"name":       "renamed",
	}))
	if err != nil {
		t.Fatalf("update_project without configuration: %v", err)
	}
	if len(putBodies) != 2 {
		t.Fatalf("recorded %d PUT bodies, want 2", len(putBodies))
	}
	if _, ok := putBodies[1]["configuration"]; ok {
		t.Error("PUT body carried a configuration key for a metadata-only update")
	}
	if got := string(putBodies[1]["name"]); got != `"renamed"` {
		t.Errorf("name in PUT body = %s", got)
	}
}
