// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSchema() InputSchema {
	return InputSchema{
		Type: "object",
		Properties: map[string]SchemaProperty{
			"text":  {Type: "string", Description: "Text to echo"},
			"count": {Type: "integer", Description: "Repeat count", Default: 1},
		},
		Required: []string{"text"},
	}
}

func TestRegistryListOrder(t *testing.T) {
	registry := NewRegistry()
	handler := func(ctx context.Context, args map[string]any) (any, error) { return nil, nil }

	registry.Register("alpha", "first", echoSchema(), handler)
	registry.Register("beta", "second", echoSchema(), handler)
	registry.Register("gamma", "third", echoSchema(), handler)

	tools := registry.List()
	require.Len(t, tools, 3)
	assert.Equal(t, "alpha", tools[0].Name)
	assert.Equal(t, "beta", tools[1].Name)
	assert.Equal(t, "gamma", tools[2].Name)

	// Re-registering keeps the original position.
	registry.Register("alpha", "replaced", echoSchema(), handler)
	tools = registry.List()
	require.Len(t, tools, 3)
	assert.Equal(t, "alpha", tools[0].Name)
	assert.Equal(t, "replaced", tools[0].Description)
}

func TestRegistryInvokeUnknownTool(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Invoke(context.Background(), "no_such_tool", nil)
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Contains(t, err.Error(), "no_such_tool")
}

func TestRegistryInvokeAppliesDefaults(t *testing.T) {
	registry := NewRegistry()
	var seen map[string]any
	registry.Register("echo", "echo", echoSchema(), func(ctx context.Context, args map[string]any) (any, error) {
		seen = args
		return args["text"], nil
	})

	result, err := registry.Invoke(context.Background(), "echo", map[string]any{"text": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
	assert.Equal(t, 1, seen["count"])
}

func TestRegistryInvokeValidation(t *testing.T) {
	registry := NewRegistry()
	registry.Register("echo", "echo", echoSchema(), func(ctx context.Context, args map[string]any) (any, error) {
		return args["text"], nil
	})

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing required argument", args: map[string]any{}},
		{name: "nil arguments", args: nil},
		{name: "wrong argument type", args: map[string]any{"text": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Invoke(context.Background(), "echo", tt.args)
			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, "echo", argErr.Tool)
			assert.NotEmpty(t, argErr.Reasons)
		})
	}
}

func TestRegistryInvokeHandlerError(t *testing.T) {
	registry := NewRegistry()
	boom := errors.New("handler exploded")
	registry.Register("echo", "echo", echoSchema(), func(ctx context.Context, args map[string]any) (any, error) {
		return nil, boom
	})

	_, err := registry.Invoke(context.Background(), "echo", map[string]any{"text": "hello"})
	assert.ErrorIs(t, err, boom)
}
