// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SSLMATE_MCP_CONFIG_FILE", "")
	t.Setenv("SSLMATE_API_KEY", "")
	t.Setenv("MCP_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_TO_FILE", "")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 30, config.API.Timeout)
	assert.Equal(t, 3010, config.Server.Port)
	assert.Equal(t, "INFO", config.Log.Level)
	assert.Empty(t, config.API.Key)
}

func TestLoadConfigFromFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		contents string
	}{
		{
			name:     "JSON",
			filename: "config.json",
			contents: `{"api": {"apiKey": "file-key", "timeoutSeconds": 10}, "server": {"port": 4000}, "log": {"level": "DEBUG"}}`,
		},
		{
			name:     "YAML",
			filename: "config.yaml",
			contents: "api:\n  apiKey: file-key\n  timeoutSeconds: 10\nserver:\n  port: 4000\nlog:\n  level: DEBUG\n",
		},
		{
			name:     "YML extension",
			filename: "config.yml",
			contents: "api:\n  apiKey: file-key\n  timeoutSeconds: 10\nserver:\n  port: 4000\nlog:\n  level: DEBUG\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SSLMATE_API_KEY", "")
			t.Setenv("MCP_PORT", "")
			t.Setenv("LOG_LEVEL", "")

			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0o644))

			config, err := LoadConfig(path)
			require.NoError(t, err)

			assert.Equal(t, "file-key", config.API.Key)
			assert.Equal(t, 10, config.API.Timeout)
			assert.Equal(t, 4000, config.Server.Port)
			assert.Equal(t, "DEBUG", config.Log.Level)
		})
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"apiKey": "file-key"}, "server": {"port": 4000}}`), 0o644))

	t.Setenv("SSLMATE_API_KEY", "env-key")
	t.Setenv("MCP_PORT", "5000")
	t.Setenv("LOG_LEVEL", "ERROR")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	// Environment wins over file values.
	assert.Equal(t, "env-key", config.API.Key)
	assert.Equal(t, 5000, config.Server.Port)
	assert.Equal(t, "ERROR", config.Log.Level)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"apiKey": "env-path-key"}}`), 0o644))

	t.Setenv("SSLMATE_MCP_CONFIG_FILE", path)
	t.Setenv("SSLMATE_API_KEY", "")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-path-key", config.API.Key)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.json")
			},
		},
		{
			name: "invalid JSON",
			path: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "bad.json")
				require.NoError(t, os.WriteFile(p, []byte(`{"api": {`), 0o644))
				return p
			},
		},
		{
			name: "invalid YAML",
			path: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "bad.yaml")
				require.NoError(t, os.WriteFile(p, []byte("api:\n\t- broken"), 0o644))
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path(t))
			assert.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Setenv("SSLMATE_API_KEY", "")
	t.Setenv("SSLMATE_MCP_CONFIG_FILE", "")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.ErrorIs(t, config.Validate(), ErrMissingAPIKey)

	config.API.Key = "some-key"
	assert.NoError(t, config.Validate())
}
