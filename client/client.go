// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/qontinui/qontinui-web-mcp/lib/config"
	"github.com/qontinui/qontinui-web-mcp/lib/netutil"
)

// Client is an HTTP client for the Qontinui web backend. It holds at
// most one bearer token at a time; the token is set by a successful
// login (or taken from settings) and attached to every request.
//
// A Client is safe for concurrent use. The underlying HTTP transport is
// created lazily on first use and recreated after Close, so connections
// are pooled across calls.
type Client struct {
	baseURL  string
	timeout  time.Duration
	settings *config.Settings
	logger   *slog.Logger

	mu          sync.Mutex
	accessToken string
	httpClient  *http.Client
}

// New creates a Client from settings. When settings carry a pre-issued
// access token, the client starts authenticated.
func New(settings *config.Settings, logger *slog.Logger) (*Client, error) {
	if settings.APIURL == "" {
		return nil, fmt.Errorf("client: API URL is required")
	}

	// Validate the URL structure. The string form (with trailing slash
	// stripped) is stored and request URLs are built by concatenation,
	// which avoids double-encoding issues with url.URL.String().
	if _, err := url.Parse(settings.APIURL); err != nil {
		return nil, fmt.Errorf("client: invalid API URL %q: %w", settings.APIURL, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:     strings.TrimRight(settings.APIURL, "/"),
		timeout:     settings.APITimeout,
		settings:    settings,
		logger:      logger,
		accessToken: settings.AccessToken,
	}, nil
}

// BaseURL returns the backend base URL with any trailing slash removed.
func (c *Client) BaseURL() string { return c.baseURL }

// Settings returns the settings the client was created from.
func (c *Client) Settings() *config.Settings { return c.settings }

// client returns the shared HTTP client, creating it if it does not
// exist or was closed.
func (c *Client) client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c.httpClient
}

// Close releases the pooled HTTP connections. The client remains
// usable; the next request creates a fresh transport.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
}

// token returns the current bearer token, or "" when unauthenticated.
func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// Request performs an HTTP request against the backend and returns the
// raw response body. The current bearer token (if any) is attached as an
// Authorization header. Status codes map to the typed errors in this
// package:
//
//	401        → *AuthenticationError (response body ignored)
//	404        → *NotFoundError (message names the request path)
//	422        → *ValidationError (message carries the body's detail field)
//	other ≥400 → *APIError (detail field when the body is JSON, else raw text)
//
// A 204 response or an empty body returns an empty (non-nil) byte slice.
// Transport failures are wrapped in *RequestError. No retries are
// performed; a single failure surfaces immediately.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("client: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.client().Do(request)
	if err != nil {
		c.logger.Error("request failed", "method", method, "path", path, "error", err)
		return nil, &RequestError{Err: err}
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	if err := errorForStatus(response.StatusCode, path, responseBody); err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusNoContent || len(responseBody) == 0 {
		return []byte{}, nil
	}
	return responseBody, nil
}

// errorForStatus maps an HTTP error status to a typed error. Status
// codes below 400 produce nil.
func errorForStatus(status int, path string, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		// The body is ignored on purpose: a 401 means the session is
		// invalid no matter what the server says about it.
		return &AuthenticationError{
			Message:    "Authentication failed. Please login again.",
			StatusCode: status,
		}
	case status == http.StatusNotFound:
		return &NotFoundError{
			Message:    fmt.Sprintf("Resource not found: %s", path),
			StatusCode: status,
		}
	case status == http.StatusUnprocessableEntity:
		return &ValidationError{
			Message:    fmt.Sprintf("Validation error: %s", detailOrFallback(body, "Validation error")),
			StatusCode: status,
		}
	case status >= 400:
		return &APIError{
			Message:    fmt.Sprintf("API error (%d): %s", status, detailOrFallback(body, string(body))),
			StatusCode: status,
		}
	}
	return nil
}

// detailOrFallback extracts the "detail" field from a JSON error body,
// falling back to the given string when the body is not JSON or carries
// no detail.
func detailOrFallback(body []byte, fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fallback
}

// requestMap performs Request and decodes the response as a JSON
// object. A 204 response or empty body yields an empty map, never nil
// and never an error.
func (c *Client) requestMap(ctx context.Context, method, path string, body any, query url.Values) (map[string]any, error) {
	responseBody, err := c.Request(ctx, method, path, body, query)
	if err != nil {
		return nil, err
	}
	if len(responseBody) == 0 {
		return map[string]any{}, nil
	}
	var result map[string]any
	if err := json.Unmarshal(responseBody, &result); err != nil {
		return nil, fmt.Errorf("client: decoding %s %s response: %w", method, path, err)
	}
	return result, nil
}

// requestInto performs Request and decodes the response into v. An
// empty body leaves v untouched.
func (c *Client) requestInto(ctx context.Context, method, path string, body any, query url.Values, v any) error {
	responseBody, err := c.Request(ctx, method, path, body, query)
	if err != nil {
		return err
	}
	if len(responseBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, v); err != nil {
		return fmt.Errorf("client: decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// listResult decodes a response that is either a bare JSON array or an
// object wrapping the array under key. Several backend list endpoints
// use one shape or the other depending on version.
func listResult(body []byte, key string) []any {
	if len(body) == 0 {
		return []any{}
	}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return []any{}
	}
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		if items, ok := v[key].([]any); ok {
			return items
		}
	}
	return []any{}
}
