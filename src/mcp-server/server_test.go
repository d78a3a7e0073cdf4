// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joswr1ght/sslmate-mcp/src/logger"
)

func TestServerBuilderErrors(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		_, err := NewServerBuilder().Build()
		assert.Error(t, err)
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewServerBuilder().WithConfig(&Config{}).Build()
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})
}

func TestServerBuilderDefaults(t *testing.T) {
	config := &Config{}
	config.API.Key = "test-key"

	s, err := NewServerBuilder().
		WithConfig(config).
		WithLogger(logger.NewMCPLogger(io.Discard, false)).
		Build()
	require.NoError(t, err)

	// Without an injected client the builder wires the production one.
	assert.NotNil(t, s.client)
	assert.Len(t, s.registry.List(), 2)
	assert.Len(t, s.resources, 1)
	assert.False(t, s.Running())
}

func TestRunCancelledContextIsClean(t *testing.T) {
	client := &fakeClient{}
	s := newTestServer(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled run is a clean interrupt: no error, and the upstream
	// client is released exactly once.
	assert.NoError(t, s.Run(ctx))
	assert.Equal(t, 1, client.closed)
}
