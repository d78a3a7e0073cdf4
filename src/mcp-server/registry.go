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
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrToolNotFound is reported by Registry.Invoke for unregistered tool
// names so the dispatcher can answer with a protocol-level error instead of
// swallowing the miss.
var ErrToolNotFound = errors.New("tool not found")

// ToolHandler produces a JSON-serializable result from tool arguments.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// SchemaProperty describes one tool parameter.
type SchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// InputSchema is the JSON Schema fragment advertised for a tool's input.
type InputSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// ToolDescriptor pairs a tool's advertised metadata with its handler.
// The handler never appears in tools/list output.
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
	Handler     ToolHandler `json:"-"`
}

// ArgumentError reports tool arguments that failed schema validation.
// The dispatcher maps it to the JSON-RPC invalid-params code.
type ArgumentError struct {
	Tool    string
	Reasons []string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Reasons, "; "))
}

// Registry maps tool names to descriptors. Tools are registered once at
// startup and never mutated at runtime, so no locking is needed: the
// dispatch loop is strictly sequential.
type Registry struct {
	order []string
	tools map[string]*ToolDescriptor
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*ToolDescriptor)}
}

// Register inserts or overwrites a tool entry. Re-registering a name keeps
// its original position in the listing order.
func (r *Registry) Register(name, description string, schema InputSchema, handler ToolHandler) {
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = &ToolDescriptor{
		Name:        name,
		Description: description,
		InputSchema: schema,
		Handler:     handler,
	}
}

// List returns the registered descriptors in registration order.
func (r *Registry) List() []ToolDescriptor {
	out := make([]ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.tools[name])
	}
	return out
}

// Invoke validates args against the tool's input schema (after filling in
// declared defaults) and runs the handler.
//
// Returns:
//   - any: The handler's result value
//   - error: ErrToolNotFound for unknown names, *ArgumentError for schema
//     violations, or the handler's own error
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if args == nil {
		args = make(map[string]any)
	}
	for param, prop := range tool.InputSchema.Properties {
		if _, present := args[param]; !present && prop.Default != nil {
			args[param] = prop.Default
		}
	}

	if err := validateArguments(tool, args); err != nil {
		return nil, err
	}

	return tool.Handler(ctx, args)
}

// validateArguments checks args against the descriptor's schema.
func validateArguments(tool *ToolDescriptor, args map[string]any) error {
	schemaJSON, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return fmt.Errorf("failed to encode input schema for %s: %w", tool.Name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", tool.Name, err)
	}

	if !result.Valid() {
		argErr := &ArgumentError{Tool: tool.Name}
		for _, desc := range result.Errors() {
			argErr.Reasons = append(argErr.Reasons, desc.String())
		}
		return argErr
	}

	return nil
}
