// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides settings loading for the qontinui-web-mcp
// server.
//
// Settings come from an optional YAML file named by the QONTINUI_CONFIG
// environment variable (or the --config flag), with QONTINUI_* environment
// variables overriding file values. The environment-variable surface
// matches the backend's own tooling, so a single .envrc works for both.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds everything the adapter needs to reach the Qontinui
// backend. One Settings is loaded per process and passed explicitly to
// the components that need it.
type Settings struct {
	// APIURL is the base URL of the Qontinui web backend.
	APIURL string `yaml:"api_url"`

	// APITimeout is the overall per-request timeout. There is no
	// per-operation cancellation beyond this; no retries are performed.
	APITimeout time.Duration `yaml:"api_timeout"`

	// AccessToken is an optional pre-issued bearer token. When set, the
	// adapter starts authenticated and never needs to log in.
	AccessToken string `yaml:"access_token"`

	// Email and Password are optional credentials for auto-login when a
	// tool requiring authentication is called without a session.
	Email    string `yaml:"email"`
	Password string `yaml:"password"`

	// LogLevel controls slog verbosity: debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the default settings. The backend URL matches the
// development server's default bind address.
func Default() Settings {
	return Settings{
		APIURL:     "http://localhost:8000",
		APITimeout: 30 * time.Second,
		LogLevel:   "info",
	}
}

// Load builds Settings from defaults, the config file at path (or, when
// path is empty, the file named by QONTINUI_CONFIG, if any), and
// QONTINUI_* environment variable overrides, in that order.
func Load(path string) (Settings, error) {
	settings := Default()

	if path == "" {
		path = os.Getenv("QONTINUI_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return settings, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := settings.applyEnvironment(); err != nil {
		return settings, err
	}
	return settings, nil
}

// UnmarshalYAML decodes a config document onto existing settings.
// Absent keys leave the current values (the defaults) untouched, and
// api_timeout accepts Go duration strings like "30s" or "2m".
func (s *Settings) UnmarshalYAML(node *yaml.Node) error {
	var file struct {
		APIURL      *string `yaml:"api_url"`
		APITimeout  *string `yaml:"api_timeout"`
		AccessToken *string `yaml:"access_token"`
		Email       *string `yaml:"email"`
		Password    *string `yaml:"password"`
		LogLevel    *string `yaml:"log_level"`
	}
	if err := node.Decode(&file); err != nil {
		return err
	}
	if file.APIURL != nil {
		s.APIURL = *file.APIURL
	}
	if file.APITimeout != nil {
		timeout, err := time.ParseDuration(*file.APITimeout)
		if err != nil {
			return fmt.Errorf("invalid api_timeout %q: %w", *file.APITimeout, err)
		}
		s.APITimeout = timeout
	}
	if file.AccessToken != nil {
		s.AccessToken = *file.AccessToken
	}
	if file.Email != nil {
		s.Email = *file.Email
	}
	if file.Password != nil {
		s.Password = *file.Password
	}
	if file.LogLevel != nil {
		s.LogLevel = *file.LogLevel
	}
	return nil
}

// applyEnvironment overlays QONTINUI_* environment variables onto the
// settings. Unset variables leave the existing values untouched.
func (s *Settings) applyEnvironment() error {
	if v := os.Getenv("QONTINUI_API_URL"); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv("QONTINUI_API_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid QONTINUI_API_TIMEOUT %q: %w", v, err)
		}
		s.APITimeout = timeout
	}
	if v := os.Getenv("QONTINUI_ACCESS_TOKEN"); v != "" {
		s.AccessToken = v
	}
	if v := os.Getenv("QONTINUI_EMAIL"); v != "" {
		s.Email = v
	}
	if v := os.Getenv("QONTINUI_PASSWORD"); v != "" {
		s.Password = v
	}
	if v := os.Getenv("QONTINUI_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	return nil
}

// HasCredentials reports whether an email/password pair is configured
// for auto-login.
func (s *Settings) HasCredentials() bool {
	return s.Email != "" && s.Password != ""
}

// HasToken reports whether a pre-issued access token is configured.
func (s *Settings) HasToken() bool {
	return s.AccessToken != ""
}
