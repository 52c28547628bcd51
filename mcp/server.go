// Copyright 2026 The Qontinui Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/qontinui/qontinui-web-mcp/lib/toolerror"
	"github.com/qontinui/qontinui-web-mcp/lib/version"
	"github.com/qontinui/qontinui-web-mcp/tools"
)

// serverName identifies this server to MCP clients.
const serverName = "qontinui-web-mcp"

// Server is an MCP server that exposes the Qontinui tool catalog over
// JSON-RPC 2.0 on newline-delimited stdio.
type Server struct {
	router      *tools.Router
	logger      *slog.Logger
	initialized bool
}

// NewServer creates an MCP server over the tool router.
func NewServer(router *tools.Router, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{router: router, logger: logger}
}

// Serve starts the MCP server reading from os.Stdin and writing to
// os.Stdout.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, os.Stdin, os.Stdout)
}

// Run processes JSON-RPC 2.0 requests from input and writes responses
// to output until input reaches EOF. Each request occupies a single
// line (newline-delimited JSON-RPC, not Content-Length framed).
func (s *Server) Run(ctx context.Context, input io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(input)
	// MCP messages can be large (full configuration documents, base64
	// image payloads).
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	encoder := json.NewEncoder(output)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if writeErr := writeError(encoder, json.RawMessage("null"), codeParseError, "parse error: "+err.Error()); writeErr != nil {
				return fmt.Errorf("writing parse error response: %w", writeErr)
			}
			continue
		}

		if req.JSONRPC != "2.0" {
			if !req.isNotification() {
				if writeErr := writeError(encoder, req.ID, codeInvalidRequest, "unsupported JSON-RPC version"); writeErr != nil {
					return fmt.Errorf("writing version error response: %w", writeErr)
				}
			}
			continue
		}

		// Notifications have no ID and receive no response.
		if req.isNotification() {
			continue
		}

		if err := s.dispatch(ctx, encoder, &req); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// dispatch routes a JSON-RPC request to the appropriate handler.
func (s *Server) dispatch(ctx context.Context, encoder *json.Encoder, req *request) error {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(encoder, req)
	case "ping":
		return writeResult(encoder, req.ID, map[string]any{})
	case "tools/list":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsList(encoder, req)
	case "tools/call":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsCall(ctx, encoder, req)
	default:
		return writeError(encoder, req.ID, codeMethodNotFound, "unknown method: "+req.Method)
	}
}

func (s *Server) handleInitialize(encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for initialize")
	}

	var params initializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid initialize params: "+err.Error())
	}

	// The MCP specification says the server responds with its own
	// protocol version and the client decides whether it can proceed.
	// Clients requesting a different version are not rejected — MCP
	// versions are additive, so older clients ignore fields they don't
	// recognize.
	s.initialized = true
	s.logger.Info("mcp session initialized",
		"client", params.ClientInfo.Name,
		"clientVersion", params.ClientInfo.Version,
		"requestedProtocol", params.ProtocolVersion)

	return writeResult(encoder, req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: serverCapabilities{
			Tools: &toolCapability{},
		},
		ServerInfo: serverInfo{
			Name:    serverName,
			Version: version.Short(),
		},
	})
}

func (s *Server) handleToolsList(encoder *json.Encoder, req *request) error {
	registry := s.router.Registry()
	descriptions := make([]toolDescription, 0, registry.Len())
	for _, t := range registry.Tools() {
		descriptions = append(descriptions, toolDescription{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: registry.Schema(t.Name),
			Annotations: annotationsFor(t),
		})
	}
	return writeResult(encoder, req.ID, toolsListResult{Tools: descriptions})
}

func (s *Server) handleToolsCall(ctx context.Context, encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for tools/call")
	}

	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
	}

	result, runErr := s.router.Call(ctx, params.Name, params.Arguments)
	return writeResult(encoder, req.ID, buildToolResult(result, runErr))
}

// buildToolResult assembles a toolsCallResult. Successful results
// carry the envelope as structuredContent plus its serialized JSON in
// a text block. Failures become isError results with errorInfo derived
// from the error's category — tool failures are results, not JSON-RPC
// errors, so the conversation continues.
func buildToolResult(result map[string]any, runErr error) toolsCallResult {
	if runErr != nil {
		return toolsCallResult{
			IsError:   true,
			Content:   []contentBlock{{Type: "text", Text: runErr.Error()}},
			ErrorInfo: classifyError(runErr),
		}
	}

	serialized, err := json.Marshal(result)
	if err != nil {
		// Handlers build results from JSON-decoded values, so this
		// indicates a handler bug.
		return toolsCallResult{
			IsError:   true,
			Content:   []contentBlock{{Type: "text", Text: "encoding tool result: " + err.Error()}},
			ErrorInfo: &errorInfo{Category: string(toolerror.CategoryInternal)},
		}
	}
	return toolsCallResult{
		Content:           []contentBlock{{Type: "text", Text: string(serialized)}},
		StructuredContent: result,
	}
}

// classifyError extracts structured error metadata from an error. The
// router categorizes everything it returns; anything else is internal.
func classifyError(err error) *errorInfo {
	var toolErr *toolerror.Error
	if errors.As(err, &toolErr) {
		return &errorInfo{
			Category:  string(toolErr.Category),
			Retryable: toolErr.Retryable(),
		}
	}
	return &errorInfo{Category: string(toolerror.CategoryInternal)}
}

// annotationsFor derives MCP behavioral hints from a tool's
// declaration. Read-only tools are safe to call speculatively; for
// everything else the MCP defaults (destructive, non-idempotent)
// apply.
func annotationsFor(t *tools.Tool) *toolAnnotations {
	if !t.ReadOnly {
		return nil
	}
	return &toolAnnotations{
		ReadOnlyHint:    boolPtr(true),
		DestructiveHint: boolPtr(false),
		IdempotentHint:  boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}
}

func boolPtr(value bool) *bool {
	return &value
}

// writeResult sends a JSON-RPC 2.0 success response.
func writeResult(encoder *json.Encoder, id json.RawMessage, result any) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// writeError sends a JSON-RPC 2.0 error response.
func writeError(encoder *json.Encoder, id json.RawMessage, code int, message string) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
}
