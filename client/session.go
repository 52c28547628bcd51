// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/qontinui/qontinui-web-mcp/lib/netutil"
)

// loginPath is the backend's credential exchange endpoint. It expects a
// form-encoded body (username/password fields), not JSON — the backend's
// auth layer follows the OAuth2 password flow convention.
const loginPath = "/api/v1/auth/jwt/login"

// Login exchanges email and password for a bearer token. On success the
// token becomes the client's active session token and is attached to
// every subsequent request. Any non-200 response produces an
// *AuthenticationError carrying the backend's detail message.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthTokens, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept", "application/json")

	response, err := c.client().Do(request)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	if response.StatusCode != http.StatusOK {
		return nil, &AuthenticationError{
			Message:    "Login failed: " + detailOrFallback(body, "Login failed"),
			StatusCode: http.StatusUnauthorized,
		}
	}

	var tokens AuthTokens
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, &AuthenticationError{
			Message:    "Login failed: unexpected response from server",
			StatusCode: http.StatusUnauthorized,
		}
	}

	c.setToken(tokens.AccessToken)
	c.logger.Info("logged in to qontinui backend", "email", email)
	return &tokens, nil
}

// LoginWithSettings logs in using the credential pair from settings.
// Fails with *AuthenticationError when no credentials are configured.
func (c *Client) LoginWithSettings(ctx context.Context) (*AuthTokens, error) {
	if !c.settings.HasCredentials() {
		return nil, &AuthenticationError{
			Message: "no credentials configured, set QONTINUI_EMAIL and QONTINUI_PASSWORD",
		}
	}
	return c.Login(ctx, c.settings.Email, c.settings.Password)
}

// Logout clears the active session token. Purely local; no network call.
func (c *Client) Logout() {
	c.setToken("")
}

// IsAuthenticated reports whether the client holds a session token. The
// token is not validated — an expired token still counts until a request
// comes back 401.
func (c *Client) IsAuthenticated() bool {
	return c.token() != ""
}

// CurrentUser fetches the account behind the active session token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.requestInto(ctx, http.MethodGet, "/api/v1/auth/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
