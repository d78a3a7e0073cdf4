// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"testing"

	verpkg "github.com/joswr1ght/sslmate-mcp/src/version"
)

func TestVersionInit(t *testing.T) {
	// Test that version is initialized
	if version == "" {
		t.Error("version should not be empty after init")
	}

	// Test that it matches the version package when not set by ldflags
	if version != verpkg.Version {
		// If they differ, it means version was set by ldflags, which is also valid
		t.Logf("version set by ldflags: %s (package version: %s)", version, verpkg.Version)
	}
}
