// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joswr1ght/sslmate-mcp/src/cli"
	"github.com/joswr1ght/sslmate-mcp/src/logger"
	verpkg "github.com/joswr1ght/sslmate-mcp/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	// Create CLI logger
	log := logger.NewCLILogger()

	// Cancel the context on SIGINT/SIGTERM so a direct search call can be
	// interrupted; the server command layers its own shutdown on top.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
