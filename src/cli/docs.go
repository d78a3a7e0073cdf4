// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the SSLMate MCP server.
// It implements a Cobra-based CLI whose root command runs the stdio MCP server
// (optionally daemonized with a PID file), plus a search subcommand for direct
// certificate transparency queries from a terminal and a stop subcommand that
// terminates a daemonized server. The package layers command-line flags over
// file and environment configuration and keeps all server diagnostics off
// stdout, which carries only JSON-RPC frames.
package cli
