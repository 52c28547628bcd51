// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/qontinui/qontinui-web-mcp/client"
)

// authTools are the only tools exempt from the authentication gate.
func authTools(c *client.Client) []*Tool {
	return []*Tool{
		authLoginTool(c),
		authStatusTool(c),
		authLogoutTool(c),
	}
}

func authLoginTool(c *client.Client) *Tool {
	var params struct {
		Email    string `json:"email" desc:"User email address" required:"true"`
		Password string `json:"password" desc:"User password" required:"true"`
	}
	return &Tool{
		Name: "auth_login",
		Description: "Authenticate with the Qontinui API using email and password. " +
			"Returns access token on success. Required before using other tools " +
			"unless an access token is configured.",
		Params: func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			if _, err := c.Login(ctx, params.Email, params.Password); err != nil {
				return nil, err
			}
			user, err := c.CurrentUser(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"message": "Logged in as " + user.Email,
				"user":    userInfo(user),
			}, nil
		},
	}
}

func authStatusTool(c *client.Client) *Tool {
	var params struct{}
	return &Tool{
		Name: "auth_status",
		Description: "Check current authentication status. " +
			"Returns whether authenticated and current user info if available.",
		ReadOnly: true,
		Params:   func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			if !c.IsAuthenticated() {
				return map[string]any{
					"authenticated": false,
					"message":       "Not authenticated. Use auth_login to authenticate.",
				}, nil
			}
			user, err := c.CurrentUser(ctx)
			if err != nil {
				// A stale token is a status, not a failure: report it
				// instead of erroring the call.
				return map[string]any{
					"authenticated": false,
					"error":         err.Error(),
				}, nil
			}
			return map[string]any{
				"authenticated": true,
				"user":          userInfo(user),
			}, nil
		},
	}
}

func authLogoutTool(c *client.Client) *Tool {
	var params struct{}
	return &Tool{
		Name:        "auth_logout",
		Description: "Clear stored authentication. Requires re-authentication to use API.",
		Params:      func() any { return &params },
		Run: func(ctx context.Context) (map[string]any, error) {
			c.Logout()
			return map[string]any{
				"success": true,
				"message": "Logged out successfully",
			}, nil
		},
	}
}

func userInfo(user *client.User) map[string]any {
	return map[string]any{
		"id":          user.ID.String(),
		"email":       user.Email,
		"is_verified": user.IsVerified,
	}
}
