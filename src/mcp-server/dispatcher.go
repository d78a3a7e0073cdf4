// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joswr1ght/sslmate-mcp/src/internal/helper/jsonrpc"
	"github.com/mark3labs/mcp-go/mcp"
)

// protocolVersion is the MCP protocol revision this server implements.
const protocolVersion = "2024-11-05"

// methodNotificationInitialized is the one-way acknowledgment the client
// sends after initialize. It never produces a response.
const methodNotificationInitialized = "notifications/initialized"

// serverInfo identifies this server in the initialize result.
type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// serverCapabilities declares what the server can do. Empty objects mean
// the capability is present without optional sub-features.
type serverCapabilities struct {
	Tools     struct{} `json:"tools"`
	Resources struct{} `json:"resources"`
}

// initializeResult is the result payload of the initialize method.
type initializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    serverCapabilities `json:"capabilities"`
	ServerInfo      serverInfo         `json:"serverInfo"`
}

// listToolsResult is the result payload of tools/list.
type listToolsResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// listResourcesResult is the result payload of resources/list.
type listResourcesResult struct {
	Resources []ResourceDescriptor `json:"resources"`
}

// TextContent is a single text content block of a tools/call result.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// callToolResult wraps a tool's return value for the wire.
type callToolResult struct {
	Content []TextContent `json:"content"`
}

// Dispatch routes one decoded JSON-RPC request to its handler and returns
// the response to write, or nil when the request is a notification and no
// response may be emitted.
//
// The request map is normalized first, so mixed-case keys from lenient
// clients are accepted. Handler failures of any kind are converted to error
// responses; Dispatch never panics outward, so the transport loop cannot be
// killed by a handler.
func (s *Server) Dispatch(ctx context.Context, req map[string]any) *jsonrpc.Response {
	req = jsonrpc.Map(req)
	id := req["id"]
	hasID := jsonrpc.HasID(req)

	method, ok := req["method"].(string)
	if !ok {
		if !hasID {
			return nil
		}
		return jsonrpc.NewError(id, mcp.INVALID_REQUEST, fmt.Sprintf("invalid method: expected string, got %T", req["method"]))
	}

	if method == methodNotificationInitialized {
		s.log.Printf("client initialization acknowledged")
		return nil
	}

	result, errResp := s.dispatchMethod(ctx, id, method, req)
	if errResp != nil {
		if !hasID {
			// JSON-RPC 2.0: a server MUST NOT reply to a notification,
			// even a failing one.
			return nil
		}
		return errResp
	}

	if !hasID {
		return nil
	}
	return jsonrpc.NewResult(id, result)
}

// dispatchMethod resolves a method name to its result payload. It returns
// either a result value or a ready-made error response.
func (s *Server) dispatchMethod(ctx context.Context, id any, method string, req map[string]any) (result any, errResp *jsonrpc.Response) {
	// A handler must never be able to crash the transport loop.
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("panic in %s handler: %v", method, r)
			result = nil
			errResp = jsonrpc.NewError(id, mcp.INTERNAL_ERROR, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	switch method {
	case string(mcp.MethodInitialize):
		if params, err := getParams(req, method); err == nil {
			var client serverInfo
			if raw, ok := params["clientInfo"]; ok {
				if err := jsonrpc.UnmarshalFromMap(raw, &client); err == nil && client.Name != "" {
					s.log.Printf("initialize from %s %s", client.Name, client.Version)
				}
			}
		}
		return initializeResult{
			ProtocolVersion: protocolVersion,
			ServerInfo: serverInfo{
				Name:    s.name,
				Version: s.version,
			},
		}, nil

	case string(mcp.MethodToolsList):
		return listToolsResult{Tools: s.registry.List()}, nil

	case string(mcp.MethodToolsCall):
		return s.dispatchToolCall(ctx, id, method, req)

	case string(mcp.MethodResourcesList):
		return listResourcesResult{Resources: s.resources}, nil

	case string(mcp.MethodResourcesRead):
		params, err := getParams(req, method)
		if err != nil {
			return nil, jsonrpc.NewError(id, mcp.INVALID_PARAMS, err.Error())
		}
		uri, err := getStringParam(params, method, "uri")
		if err != nil {
			return nil, jsonrpc.NewError(id, mcp.INVALID_PARAMS, err.Error())
		}
		contents, err := s.readResource(ctx, uri)
		if err != nil {
			return nil, jsonrpc.NewError(id, mcp.INTERNAL_ERROR, fmt.Sprintf("Internal error: %v", err))
		}
		return map[string]any{"contents": contents}, nil

	default:
		return nil, jsonrpc.NewError(id, mcp.METHOD_NOT_FOUND, "Method not found: "+method)
	}
}

// dispatchToolCall handles tools/call: registry lookup, schema-validated
// invocation, and wrapping of the result as one text content block.
func (s *Server) dispatchToolCall(ctx context.Context, id any, method string, req map[string]any) (any, *jsonrpc.Response) {
	params, err := getParams(req, method)
	if err != nil {
		return nil, jsonrpc.NewError(id, mcp.INVALID_PARAMS, err.Error())
	}
	name, err := getStringParam(params, method, "name")
	if err != nil {
		return nil, jsonrpc.NewError(id, mcp.INVALID_PARAMS, err.Error())
	}
	args, err := getMapParam(params, method, "arguments")
	if err != nil {
		return nil, jsonrpc.NewError(id, mcp.INVALID_PARAMS, err.Error())
	}

	value, err := s.registry.Invoke(ctx, name, args)
	if err != nil {
		var argErr *ArgumentError
		switch {
		case errors.Is(err, ErrToolNotFound):
			return nil, jsonrpc.NewError(id, mcp.METHOD_NOT_FOUND, "Tool not found: "+name)
		case errors.As(err, &argErr):
			return nil, jsonrpc.NewError(id, mcp.INVALID_PARAMS, argErr.Error())
		default:
			s.log.Errorf("error handling %s: %v", name, err)
			return nil, jsonrpc.NewError(id, mcp.INTERNAL_ERROR, fmt.Sprintf("Internal error: %v", err))
		}
	}

	text, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, jsonrpc.NewError(id, mcp.INTERNAL_ERROR, fmt.Sprintf("Internal error: %v", err))
	}

	return callToolResult{
		Content: []TextContent{
			{Type: "text", Text: string(text)},
		},
	}, nil
}
