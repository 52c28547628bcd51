// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

// Command qontinui-mcp is an MCP server exposing the Qontinui web
// backend to AI assistants over stdio.
//
// The server speaks newline-delimited JSON-RPC 2.0 on stdin/stdout and
// logs to stderr, so an MCP client (Claude Desktop, an IDE extension)
// can spawn it as a subprocess. All configuration comes from a YAML
// file and QONTINUI_* environment variables; flags only select the
// config file and log level.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/qontinui/qontinui-web-mcp/client"
	"github.com/qontinui/qontinui-web-mcp/lib/config"
	"github.com/qontinui/qontinui-web-mcp/lib/version"
	"github.com/qontinui/qontinui-web-mcp/mcp"
	"github.com/qontinui/qontinui-web-mcp/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		logLevel   string
	)

	flagSet := pflag.NewFlagSet("qontinui-mcp", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $QONTINUI_CONFIG)")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("qontinui-mcp %s\n", version.Full())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if logLevel != "" {
		settings.LogLevel = logLevel
	}

	logger, err := newLogger(settings.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiClient, err := client.New(&settings, logger)
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}
	defer apiClient.Close()

	registry, err := tools.NewRegistry(apiClient)
	if err != nil {
		return fmt.Errorf("building tool registry: %w", err)
	}

	logger.Info("starting qontinui-mcp",
		"version", version.Info(),
		"apiURL", settings.APIURL,
		"hasCredentials", settings.HasCredentials(),
		"hasToken", settings.HasToken(),
		"tools", registry.Len())

	server := mcp.NewServer(tools.NewRouter(registry, apiClient, logger), logger)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	logger.Info("stdin closed, shutting down")
	return nil
}

// newLogger builds the stderr logger. Stdout belongs to the JSON-RPC
// stream, so all logging goes to stderr: human-readable text when
// stderr is a terminal, JSON when it is piped (MCP clients capture
// stderr into their own logs).
func newLogger(level string) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "", "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (want debug, info, warn, or error)", level)
	}

	options := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler), nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Qontinui MCP server — exposes the Qontinui web backend as MCP tools.

The server reads JSON-RPC 2.0 requests from stdin and writes responses
to stdout, one message per line. Configure the backend connection via
a YAML config file (--config or $QONTINUI_CONFIG) and environment
variables: QONTINUI_API_URL, QONTINUI_EMAIL, QONTINUI_PASSWORD,
QONTINUI_ACCESS_TOKEN, QONTINUI_API_TIMEOUT, QONTINUI_LOG_LEVEL.

Usage:
  qontinui-mcp [flags]

Examples:
  # Run against a local backend with credentials from the environment
  QONTINUI_EMAIL=dev@example.com QONTINUI_PASSWORD=secret qontinui-mcp

  # Run with a config file and verbose logging
  qontinui-mcp --config ~/.qontinui/mcp.yaml --log-level debug

Flags:
%s`, flagSet.FlagUsages())
}
