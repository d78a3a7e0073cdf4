// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is reported when no SSLMate API key was supplied through
// any configuration channel. It is a fatal startup error.
var ErrMissingAPIKey = errors.New("SSLMate API key is required: set SSLMATE_API_KEY or use --api-key")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// SSLMATE_MCP_CONFIG_FILE environment variable or the --config flag, with
// defaults applied for any missing values and environment variables layered
// on top. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// API: Upstream SSLMate API settings
	API struct {
		// Key: API key used as a bearer token (SSLMATE_API_KEY env var)
		Key string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
		// BaseURL: Upstream endpoint override, mainly for testing
		BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
		// Timeout: Per-call HTTP timeout in seconds
		Timeout int `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"`
	} `json:"api" yaml:"api"`

	// Server: Transport settings
	Server struct {
		// Port: Listening port, only relevant to non-stdio transport variants
		Port int `json:"port,omitempty" yaml:"port,omitempty"`
	} `json:"server" yaml:"server"`

	// Log: Diagnostic output settings; never routed to stdout
	Log struct {
		// Level: Verbosity threshold (debug, info, warn, error)
		Level string `json:"level,omitempty" yaml:"level,omitempty"`
		// File: Optional log file path; stderr when empty
		File string `json:"file,omitempty" yaml:"file,omitempty"`
	} `json:"log" yaml:"log"`
}

// Validate reports fatal configuration errors. The only hard requirement is
// the API key; everything else has a usable default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// detectConfigFormat determines the configuration file format based on file extension.
// It supports .json, .yaml, and .yml extensions for flexible configuration management.
//
// The function uses case-insensitive extension matching for cross-platform compatibility.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
// It supports both JSON and YAML formats for configuration flexibility.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// LoadConfig loads MCP server configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the configuration file cannot be read or parsed
//
// Configuration Priority:
//  1. Default values are set
//  2. SSLMATE_MCP_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. Environment variables override config file values
//     (SSLMATE_API_KEY, MCP_PORT, LOG_LEVEL, LOG_TO_FILE)
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.API.Timeout = 30
	config.Server.Port = 3010
	config.Log.Level = "INFO"

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv("SSLMATE_MCP_CONFIG_FILE")
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Detect format and unmarshal accordingly
		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Validate and set defaults for invalid values
		if config.API.Timeout <= 0 {
			config.API.Timeout = 30
		}
		if config.Server.Port <= 0 {
			config.Server.Port = 3010
		}
	}

	// Environment overrides
	if key := os.Getenv("SSLMATE_API_KEY"); key != "" {
		config.API.Key = key
	}
	if port := os.Getenv("MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	if file := os.Getenv("LOG_TO_FILE"); file != "" && config.Log.File == "" {
		config.Log.File = file
	}

	return config, nil
}
