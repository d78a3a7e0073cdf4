// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// This package contains utility functions that ensure [POSIX]-compliant behavior
// across different operating systems, particularly for executable name handling,
// PID-file management, and daemonization of the MCP server process.
//
// The functions in this package are designed to be:
//   - [POSIX]-compliant: Using only standard library functions that work on [POSIX] systems
//   - Cross-platform safe: Handling differences between operating systems gracefully
//   - Error-resistant: Providing sensible fallbacks for edge cases
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//   - Daemonize: Re-executes the current binary as a detached background process
//   - WritePIDFile / ReadPIDFile / RemovePIDFile: Track the daemon PID on disk
//   - StopDaemon: Signals a previously daemonized process via its PID file
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
