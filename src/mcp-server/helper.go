// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"time"
)

// getParams extracts parameters from a normalized JSON-RPC request.
// An absent params object is treated as empty, matching clients that omit
// "params" entirely on parameterless calls.
func getParams(req map[string]any, method string) (map[string]any, error) {
	raw, ok := req["params"]
	if !ok || raw == nil {
		return map[string]any{}, nil
	}
	p, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid %s params", method)
	}
	return p, nil
}

// getStringParam extracts a required string parameter.
func getStringParam(params map[string]any, method, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing %s parameter %q", method, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("invalid %s parameter %q: expected string, got %T", method, key, v)
	}
	return s, nil
}

// getMapParam extracts an optional object parameter; absent means empty.
func getMapParam(params map[string]any, method, key string) (map[string]any, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return map[string]any{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid %s parameter %q: expected object, got %T", method, key, v)
	}
	return m, nil
}

// stringArg reads a string tool argument with a fallback default.
func stringArg(args map[string]any, key, def string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return def
}

// intArg reads an integer tool argument with a fallback default.
// JSON decoding yields float64 for numbers, so both forms are accepted.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

// boolArg reads a boolean tool argument with a fallback default.
func boolArg(args map[string]any, key string, def bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return def
}

// timeoutSeconds converts a configured timeout in seconds to a Duration,
// letting zero/negative values fall through to the client default.
func timeoutSeconds(s int) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s) * time.Second
}
