// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a log verbosity threshold.
type Level int

const (
	// LevelDebug enables all log output.
	LevelDebug Level = iota
	// LevelInfo is the default verbosity.
	LevelInfo
	// LevelWarn restricts output to warnings and errors.
	LevelWarn
	// LevelError restricts output to errors only.
	LevelError
)

// ParseLevel converts a level name ("DEBUG", "info", ...) to a Level.
// Unrecognized names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// This interface supports both CLI and [MCP] server modes, allowing seamless
// switching between human-readable output and structured logging.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints an info-level log message.
	Printf(format string, v ...any)
	// Println prints an info-level log message with a newline.
	Println(v ...any)
	// Warnf formats and prints a warning-level log message.
	Warnf(format string, v ...any)
	// Errorf formats and prints an error-level log message.
	Errorf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
// Info output goes to stdout; warnings and errors go to stderr.
type CLILogger struct {
	logger *log.Logger
	errlog *log.Logger
}

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	return &CLILogger{
		logger: log.New(os.Stdout, "", 0),
		errlog: log.New(os.Stderr, "", 0),
	}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Warnf formats and prints a warning message to stderr.
func (c *CLILogger) Warnf(format string, v ...any) { c.errlog.Printf("Warning: "+format, v...) }

// Errorf formats and prints an error message to stderr.
func (c *CLILogger) Errorf(format string, v ...any) { c.errlog.Printf("Error: "+format, v...) }

// SetOutput sets the output destination for the CLI logger's info stream.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// MCPLogger implements Logger for [MCP] server mode.
//
// Protocol frames own stdout, so MCPLogger writes structured JSON log lines
// to stderr or an optional log file instead. Messages below the configured
// level threshold are dropped.
//
// MCPLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type MCPLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
	level  Level
}

// NewMCPLogger creates a new [MCP] logger writing to the given destination.
// A nil writer discards all output. Set silent=true to suppress output
// entirely regardless of level.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func NewMCPLogger(writer io.Writer, silent bool) *MCPLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &MCPLogger{
		writer: writer,
		silent: silent,
		level:  LevelInfo,
	}
}

// SetLevel sets the minimum level that will be written.
//
// SetLevel is safe for concurrent use by multiple goroutines.
func (m *MCPLogger) SetLevel(level Level) {
	m.mu.Lock()
	m.level = level
	m.mu.Unlock()
}

// Printf formats and logs an info-level message in JSON format.
func (m *MCPLogger) Printf(format string, v ...any) {
	m.write(LevelInfo, fmt.Sprintf(format, v...))
}

// Println logs an info-level message in JSON format.
func (m *MCPLogger) Println(v ...any) {
	m.write(LevelInfo, fmt.Sprint(v...))
}

// Warnf formats and logs a warning-level message in JSON format.
func (m *MCPLogger) Warnf(format string, v ...any) {
	m.write(LevelWarn, fmt.Sprintf(format, v...))
}

// Errorf formats and logs an error-level message in JSON format.
func (m *MCPLogger) Errorf(format string, v ...any) {
	m.write(LevelError, fmt.Sprintf(format, v...))
}

// write emits one structured log line if the level clears the threshold.
//
// write is safe for concurrent use by multiple goroutines.
func (m *MCPLogger) write(level Level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.silent || level < m.level {
		return
	}

	logEntry := map[string]any{
		"level":   level.String(),
		"message": msg,
	}

	data, _ := json.Marshal(logEntry)
	fmt.Fprintln(m.writer, string(data))
}

// SetOutput sets the output destination for the MCP logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (m *MCPLogger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w == nil {
		m.writer = io.Discard
	} else {
		m.writer = w
	}
}
