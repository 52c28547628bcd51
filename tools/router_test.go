// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/config"
	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter builds a router over a client pointed at an httptest
// server. configure mutates the settings before the client is created
// (to add a token or credentials).
func newTestRouter(t *testing.T, handler http.HandlerFunc, configure func(*config.Settings)) *Router {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	settings := config.Default()
	settings.APIURL = server.URL
	if configure != nil {
		configure(&settings)
	}

	c, err := client.New(&settings, testLogger())
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	t.Cleanup(c.Close)

	registry, err := NewRegistry(c)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewRouter(registry, c, testLogger())
}

func callArgs(t *testing.T, args map[string]any) json.RawMessage {
	t.Helper()
	encoded, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshal args: %v", err)
	}
	return encoded
}

func categoryOf(t *testing.T, err error) toolerror.Category {
	t.Helper()
	var toolErr *toolerror.Error
	if !errors.As(err, &toolErr) {
		t.Fatalf("error = %T (%v), want *toolerror.Error", err, err)
	}
	return toolErr.Category
}

func TestRegistryCatalog(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	registry := router.Registry()

	if registry.Len() != 44 {
		t.Errorf("registered %d tools, want 44", registry.Len())
	}

	for _, name := range []string{
		"auth_login", "auth_status", "auth_logout",
		"list_projects", "create_project", "get_project", "update_project", "delete_project",
		"export_configuration", "import_configuration", "validate_configuration",
		"list_workflows", "create_workflow", "update_workflow", "delete_workflow",
		"list_states", "create_state", "update_state", "delete_state",
		"list_images", "add_image", "delete_image",
		"list_transitions", "create_transition", "update_transition", "delete_transition",
		"execute_workflow", "get_execution_status", "cancel_execution",
		"create_capture_session", "list_capture_sessions", "get_capture_session",
		"upload_capture_screenshot", "add_capture_action", "complete_capture_session",
		"generate_workflow_from_capture", "list_learned_workflows", "approve_learned_workflow",
		"list_variables", "create_variable", "get_variable", "update_variable",
		"delete_variable", "get_variable_history",
	} {
		if _, ok := registry.Lookup(name); !ok {
			t.Errorf("tool %q not registered", name)
		}
		if registry.Schema(name) == nil {
			t.Errorf("tool %q has no input schema", name)
		}
	}
}

func TestUnknownTool(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	_, err := router.Call(context.Background(), "no_such_tool", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if want := "Unknown tool: no_such_tool"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	if got := categoryOf(t, err); got != toolerror.CategoryValidation {
		t.Errorf("category = %q, want validation", got)
	}
}

func TestAuthGateBlocksWithoutCredentials(t *testing.T) {
	var hits int
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	}, nil)

	_, err := router.Call(context.Background(), "list_projects", callArgs(t, map[string]any{}))
	if err == nil {
		t.Fatal("expected auth gate error")
	}
	if want := "Not authenticated. Use auth_login first."; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	if got := categoryOf(t, err); got != toolerror.CategoryForbidden {
		t.Errorf("category = %q, want forbidden", got)
	}
	if hits != 0 {
		t.Errorf("backend received %d requests, want 0 (gate fires before any call)", hits)
	}
}

func TestAuthGateAutoLogin(t *testing.T) {
	var loggedIn bool
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/jwt/login":
			loggedIn = true
			w.Write([]byte(`{"access_token":"auto-tok","token_type":"bearer"}`))
		case "/api/v1/projects":
			if r.Header.Get("Authorization") != "Bearer auto-tok" {
				t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
			}
			w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}, func(s *config.Settings) {
		s.Email = "dev@example.com"
		s.Password = "hunter2"
	})

	result, err := router.Call(context.Background(), "list_projects", callArgs(t, map[string]any{}))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !loggedIn {
		t.Error("auto-login never hit the login endpoint")
	}
	if result["success"] != true {
		t.Errorf("result = %v", result)
	}
}

func TestAuthGateAutoLoginFailure(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/jwt/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"LOGIN_BAD_CREDENTIALS"}`))
	}, func(s *config.Settings) {
		s.Email = "dev@example.com"
		s.Password = "wrong"
	})

	_, err := router.Call(context.Background(), "list_projects", callArgs(t, map[string]any{}))
	if err == nil {
		t.Fatal("expected auto-login failure")
	}
	if !strings.HasPrefix(err.Error(), "Not authenticated. Auto-login failed: ") {
		t.Errorf("error = %q", err.Error())
	}
	if got := categoryOf(t, err); got != toolerror.CategoryForbidden {
		t.Errorf("category = %q, want forbidden", got)
	}
}

func TestAuthToolsExemptFromGate(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("auth_status hit the backend at %q while unauthenticated", r.URL.Path)
	}, nil)

	result, err := router.Call(context.Background(), "auth_status", nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["authenticated"] != false {
		t.Errorf("result = %v", result)
	}
	if message, _ := result["message"].(string); !strings.Contains(message, "auth_login") {
		t.Errorf("message = %q", message)
	}
}

func TestRequiredArgumentMissing(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, func(s *config.Settings) {
		s.AccessToken = "tok"
	})

	_, err := router.Call(context.Background(), "get_project", callArgs(t, map[string]any{}))
	if err == nil {
		t.Fatal("expected required-argument error")
	}
	if want := "project_id is required"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	if got := categoryOf(t, err); got != toolerror.CategoryValidation {
		t.Errorf("category = %q, want validation", got)
	}
}

func TestRequiredArgumentEmptyString(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, func(s *config.Settings) {
		s.AccessToken = "tok"
	})

	_, err := router.Call(context.Background(), "get_project", callArgs(t, map[string]any{"project_id": ""}))
	if err == nil || err.Error() != "project_id is required" {
		t.Errorf("error = %v, want project_id is required", err)
	}
}

func TestInvalidUUIDArgument(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, func(s *config.Settings) {
		s.AccessToken = "tok"
	})

	_, err := router.Call(context.Background(), "get_project", callArgs(t, map[string]any{"project_id": "not-a-uuid"}))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid project_id") {
		t.Errorf("error = %q", err.Error())
	}
	if got := categoryOf(t, err); got != toolerror.CategoryValidation {
		t.Errorf("category = %q, want validation", got)
	}
}

func TestBackendNotFoundClassified(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, func(s *config.Settings) {
		s.AccessToken = "tok"
	})

	_, err := router.Call(context.Background(), "get_project",
		callArgs(t, map[string]any{"project_id": "2da4c8a8-9f13-4e0f-b0c1-1234567890ab"}))
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if got := categoryOf(t, err); got != toolerror.CategoryNotFound {
		t.Errorf("category = %q, want not_found", got)
	}
}

func TestTransportFailureClassifiedTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	settings := config.Default()
	settings.APIURL = server.URL
	settings.AccessToken = "tok"

	c, err := client.New(&settings, testLogger())
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	registry, err := NewRegistry(c)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	router := NewRouter(registry, c, testLogger())
	server.Close()

	_, err = router.Call(context.Background(), "get_project",
		callArgs(t, map[string]any{"project_id": "2da4c8a8-9f13-4e0f-b0c1-1234567890ab"}))
	if err == nil {
		t.Fatal("expected transport error")
	}
	var toolErr *toolerror.Error
	if !errors.As(err, &toolErr) {
		t.Fatalf("error = %T", err)
	}
	if toolErr.Category != toolerror.CategoryTransient || !toolErr.Retryable() {
		t.Errorf("category = %q retryable = %v, want transient/retryable", toolErr.Category, toolErr.Retryable())
	}
}

func TestParamsZeroedBetweenCalls(t *testing.T) {
	var bodies []map[string]any
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		w.Write([]byte(`{"id":"2da4c8a8-9f13-4e0f-b0c1-1234567890ab","name":"p","configuration":{}}`))
	}, func(s *config.Settings) {
		s.AccessToken = "tok"
	})

	if _, err := router.Call(context.Background(), "create_project",
		callArgs(t, map[string]any{"name": "first", "description": "with text"})); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := router.Call(context.Background(), "create_project",
		callArgs(t, map[string]any{"name": "second"})); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if len(bodies) != 2 {
		t.Fatalf("backend saw %d requests, want 2", len(bodies))
	}
	if _, present := bodies[1]["description"]; present {
		t.Errorf("second request carried stale description: %v", bodies[1])
	}
}

func TestSchemaMarksRequiredAndDefaults(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	registry := router.Registry()

	createTransition := registry.Schema("create_transition")
	required := map[string]bool{}
	for _, field := range createTransition.Required {
		required[field] = true
	}
	for _, field := range []string{"project_id", "name", "from_state", "to_state"} {
		if !required[field] {
			t.Errorf("create_transition: %s not marked required", field)
		}
	}
	if required["timeout"] || required["workflows"] {
		t.Error("create_transition: optional fields marked required")
	}
	if got := createTransition.Properties["timeout"].Default; got != 10000 {
		t.Errorf("timeout default = %v, want 10000", got)
	}
	if got := createTransition.Properties["type"].Enum; len(got) != 3 || got[0] != "action" {
		t.Errorf("type enum = %v", got)
	}

	listProjects := registry.Schema("list_projects")
	if len(listProjects.Required) != 0 {
		t.Errorf("list_projects required = %v, want none", listProjects.Required)
	}
	if got := listProjects.Properties["limit"].Default; got != 100 {
		t.Errorf("limit default = %v, want 100", got)
	}
}
