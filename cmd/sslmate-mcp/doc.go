// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// sslmate-mcp is an MCP server that exposes SSLMate Certificate
// Transparency search to LLM clients over newline-delimited JSON-RPC
// on stdio.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/joswr1ght/sslmate-mcp/cmd/sslmate-mcp@latest
//
// # Usage
//
//	sslmate-mcp [FLAGS]
//	sslmate-mcp search DOMAIN [FLAGS]
//	sslmate-mcp stop
//
// # Flags
//
//	    --api-key    SSLMate API key (overrides SSLMATE_API_KEY)
//	-c, --config     Path to a JSON or YAML config file
//	    --log-level  Log verbosity: debug, info, warn, error
//	    --log-file   Append diagnostics to FILE instead of stderr
//	-d, --daemon     Run the server as a detached background process
//	    --pid-file   PID file used by --daemon and stop
//
// # Examples
//
// Run the server in the foreground with the key from the environment:
//
//	SSLMATE_API_KEY=... sslmate-mcp
//
// Search certificate transparency logs directly from a terminal:
//
//	sslmate-mcp --api-key ... search example.com --include-subdomains
//
// Run in the background and stop it later:
//
//	sslmate-mcp --api-key ... --daemon
//	sslmate-mcp stop
package main
