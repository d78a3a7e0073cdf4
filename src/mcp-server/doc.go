// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver implements the Model Context Protocol ([MCP]) server for
// SSLMate certificate-transparency search. It exposes certificate tools over
// newline-delimited [JSON-RPC 2.0] frames on standard input/output: a
// declarative tool registry, a stateless dispatcher with exact
// notification-vs-request framing, and a strictly sequential stdio transport
// loop that keeps diagnostics off the protocol stream. The package uses a
// builder pattern for server construction.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
// [JSON-RPC 2.0]: https://www.jsonrpc.org/specification
package mcpserver
