// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/qontinui/qontinui-web-mcp/lib/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient starts an httptest server around handler and returns a
// client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	settings := config.Default()
	settings.APIURL = server.URL
	settings.APITimeout = 5 * time.Second

	c, err := New(&settings, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c, server
}

func TestRequestAttachesBearerToken(t *testing.T) {
	var got string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	c.setToken("tok-123")

	if _, err := c.Request(context.Background(), http.MethodGet, "/api/v1/projects", nil, nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer tok-123")
	}
}

func TestRequestNoTokenNoHeader(t *testing.T) {
	var present bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	})

	if _, err := c.Request(context.Background(), http.MethodGet, "/", nil, nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if present {
		t.Error("Authorization header sent without a token")
	}
}

func TestRequestUnauthorizedIgnoresBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired at 2026-01-01"}`))
	})

	_, err := c.Request(context.Background(), http.MethodGet, "/api/v1/projects", nil, nil)
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %T (%v), want *AuthenticationError", err, err)
	}
	if authErr.Message != "Authentication failed. Please login again." {
		t.Errorf("message = %q", authErr.Message)
	}
	if strings.Contains(authErr.Message, "token expired") {
		t.Error("401 message leaked the response body")
	}
}

func TestRequestNotFoundNamesPath(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Request(context.Background(), http.MethodGet, "/api/v1/projects/abc", nil, nil)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %T (%v), want *NotFoundError", err, err)
	}
	if !strings.Contains(notFound.Message, "/api/v1/projects/abc") {
		t.Errorf("message %q does not name the path", notFound.Message)
	}
}

func TestRequestValidationErrorCarriesDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"name must not be empty"}`))
	})

	_, err := c.Request(context.Background(), http.MethodPost, "/api/v1/projects", map[string]any{}, nil)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %T (%v), want *ValidationError", err, err)
	}
	if want := "Validation error: name must not be empty"; valErr.Message != want {
		t.Errorf("message = %q, want %q", valErr.Message, want)
	}
}

func TestRequestAPIErrorFallsBackToRawBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("backend exploded"))
	})

	_, err := c.Request(context.Background(), http.MethodGet, "/", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T (%v), want *APIError", err, err)
	}
	if want := "API error (500): backend exploded"; apiErr.Message != want {
		t.Errorf("message = %q, want %q", apiErr.Message, want)
	}
}

func TestRequestNoContentYieldsEmptyBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	body, err := c.Request(context.Background(), http.MethodDelete, "/api/v1/projects/x", nil, nil)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if body == nil || len(body) != 0 {
		t.Errorf("body = %v, want empty non-nil slice", body)
	}

	result, err := c.requestMap(context.Background(), http.MethodDelete, "/api/v1/projects/x", nil, nil)
	if err != nil {
		t.Fatalf("requestMap: %v", err)
	}
	if result == nil || len(result) != 0 {
		t.Errorf("requestMap = %v, want empty map", result)
	}
}

func TestRequestTransportFailure(t *testing.T) {
	c, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := c.Request(context.Background(), http.MethodGet, "/", nil, nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %T (%v), want *RequestError", err, err)
	}
	if reqErr.Unwrap() == nil {
		t.Error("RequestError does not wrap the transport error")
	}
}

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	var contentType, username, password string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/jwt/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		contentType = r.Header.Get("Content-Type")
		r.ParseForm()
		username = r.PostFormValue("username")
		password = r.PostFormValue("password")
		w.Write([]byte(`{"access_token":"tok-xyz","token_type":"bearer"}`))
	})

	tokens, err := c.Login(context.Background(), "dev@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if contentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", contentType)
	}
	if username != "dev@example.com" || password != "hunter2" {
		t.Errorf("credentials = %q/%q", username, password)
	}
	if tokens.AccessToken != "tok-xyz" {
		t.Errorf("access token = %q", tokens.AccessToken)
	}
	if !c.IsAuthenticated() {
		t.Error("client not authenticated after login")
	}
}

func TestLoginFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"LOGIN_BAD_CREDENTIALS"}`))
	})

	_, err := c.Login(context.Background(), "dev@example.com", "wrong")
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %T (%v), want *AuthenticationError", err, err)
	}
	if want := "Login failed: LOGIN_BAD_CREDENTIALS"; authErr.Message != want {
		t.Errorf("message = %q, want %q", authErr.Message, want)
	}
	if c.IsAuthenticated() {
		t.Error("client authenticated after failed login")
	}
}

func TestLoginWithSettingsRequiresCredentials(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("login request sent without credentials")
	})

	_, err := c.LoginWithSettings(context.Background())
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %T (%v), want *AuthenticationError", err, err)
	}
	if !strings.Contains(authErr.Message, "QONTINUI_EMAIL") {
		t.Errorf("message %q does not mention the env vars", authErr.Message)
	}
}

func TestLogoutClearsToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	c.setToken("tok")
	c.Logout()
	if c.IsAuthenticated() {
		t.Error("still authenticated after logout")
	}
}

func TestNewStripsTrailingSlashAndStartsWithSettingsToken(t *testing.T) {
	settings := config.Default()
	settings.APIURL = "http://localhost:8000/"
	settings.AccessToken = "pre-issued"

	c, err := New(&settings, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.BaseURL() != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", c.BaseURL())
	}
	if !c.IsAuthenticated() {
		t.Error("settings token not adopted")
	}
}

func TestListResultShapes(t *testing.T) {
	bare := listResult([]byte(`[{"a":1},{"a":2}]`), "items")
	if len(bare) != 2 {
		t.Errorf("bare array: got %d items", len(bare))
	}
	wrapped := listResult([]byte(`{"items":[{"a":1}],"total":1}`), "items")
	if len(wrapped) != 1 {
		t.Errorf("wrapped array: got %d items", len(wrapped))
	}
	if got := listResult([]byte(`{"other":[]}`), "items"); len(got) != 0 {
		t.Errorf("missing key: got %v", got)
	}
	if got := listResult(nil, "items"); got == nil || len(got) != 0 {
		t.Errorf("empty body: got %v", got)
	}
}

func TestRequestQueryEncoding(t *testing.T) {
	var rawQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	query := url.Values{"skip": {"0"}, "limit": {"100"}}
	if _, err := c.Request(context.Background(), http.MethodGet, "/api/v1/projects", nil, query); err != nil {
		t.Fatalf("Request: %v", err)
	}
	parsed, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if parsed.Get("limit") != "100" || parsed.Get("skip") != "0" {
		t.Errorf("query = %q", rawQuery)
	}
}
