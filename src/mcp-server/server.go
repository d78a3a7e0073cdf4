// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joswr1ght/sslmate-mcp/src/logger"
	"github.com/joswr1ght/sslmate-mcp/src/sslmate"
	"github.com/joswr1ght/sslmate-mcp/src/version"
)

// serverName is the identity reported in the initialize result.
const serverName = "sslmate-mcp"

// shutdownGrace bounds how long a signal-triggered shutdown waits for the
// transport loop to finish an in-flight request.
const shutdownGrace = 500 * time.Millisecond

// CertificateClient is the upstream dependency of the tool handlers.
// *sslmate.Client is the production implementation; tests inject fakes.
type CertificateClient interface {
	Search(ctx context.Context, query string, limit int, includeExpired, includeSubdomains bool) ([]sslmate.CertificateRecord, error)
	GetDetails(ctx context.Context, certID string) (*sslmate.CertificateRecord, error)
	Close()
}

// Server multiplexes MCP tool invocations and notifications over a single
// stdio stream. One Server owns one upstream client; the client is created
// at construction and released exactly once after the transport loop stops.
type Server struct {
	name      string
	version   string
	config    *Config
	client    CertificateClient
	registry  *Registry
	resources []ResourceDescriptor
	log       logger.Logger
	running   atomic.Bool
}

// ServerBuilder assembles a Server step by step for better testability.
type ServerBuilder struct {
	config  *Config
	client  CertificateClient
	log     logger.Logger
	version string
}

// NewServerBuilder creates a builder with defaults applied.
func NewServerBuilder() *ServerBuilder {
	return &ServerBuilder{version: version.Version}
}

// WithConfig sets the server configuration.
func (b *ServerBuilder) WithConfig(config *Config) *ServerBuilder {
	b.config = config
	return b
}

// WithClient sets the upstream certificate client.
func (b *ServerBuilder) WithClient(client CertificateClient) *ServerBuilder {
	b.client = client
	return b
}

// WithLogger sets the diagnostic logger.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.log = log
	return b
}

// WithVersion sets the reported server version.
func (b *ServerBuilder) WithVersion(v string) *ServerBuilder {
	b.version = v
	return b
}

// Build validates the builder state and constructs the Server with its
// tools and resources registered.
func (b *ServerBuilder) Build() (*Server, error) {
	if b.config == nil {
		return nil, errors.New("server requires a config")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.log == nil {
		b.log = logger.NewMCPLogger(os.Stderr, false)
	}
	if b.client == nil {
		b.client = sslmate.New(b.config.API.Key, sslmate.Options{
			BaseURL: b.config.API.BaseURL,
			Timeout: timeoutSeconds(b.config.API.Timeout),
			Logger:  b.log,
		})
	}

	s := &Server{
		name:      serverName,
		version:   b.version,
		config:    b.config,
		client:    b.client,
		registry:  NewRegistry(),
		resources: createResources(),
		log:       b.log,
	}
	s.registerTools()

	return s, nil
}

// Running reports whether the transport loop is currently active.
func (s *Server) Running() bool { return s.running.Load() }

// Run starts the stdio transport on the process's standard streams and
// blocks until end of input or a termination signal.
//
// Server Lifecycle:
//  1. Set up signal handling for graceful shutdown
//  2. Run the transport loop in its own goroutine
//  3. Wait for either loop exit or SIGINT/SIGTERM
//  4. Release the upstream client exactly once
//
// A signal-triggered shutdown and end of input both return nil, so the
// process exits 0 on a clean interrupt.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			s.log.Printf("received termination signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(ctx, os.Stdin, os.Stdout)
	}()

	var err error
	select {
	case err = <-errChan:
	case <-ctx.Done():
		err = ctx.Err()
		// Let an in-flight handler finish its write before the client is
		// released; a loop still blocked on the stdin read is abandoned
		// once the deadline passes.
		select {
		case <-errChan:
		case <-time.After(shutdownGrace):
		}
	}

	// The loop has stopped (or been abandoned on a blocked read); the
	// upstream client is released exactly once either way.
	s.client.Close()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
