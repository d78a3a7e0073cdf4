// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wireResponse mirrors the response frame shape for decoding test output.
type wireResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// serveScript runs the transport loop over the given input and returns the
// decoded response frames.
func serveScript(t *testing.T, s *Server, input string) []wireResponse {
	t.Helper()

	var out bytes.Buffer
	err := s.Serve(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	var frames []wireResponse
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var frame wireResponse
		require.NoError(t, json.Unmarshal([]byte(line), &frame), "frame: %s", line)
		frames = append(frames, frame)
	}
	return frames
}

func TestServeRequestResponseOrdering(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	input := `{"jsonrpc": "2.0", "id": 1, "method": "initialize"}
{"jsonrpc": "2.0", "method": "notifications/initialized"}
{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}
{"jsonrpc": "2.0", "id": 3, "method": "resources/list"}
`

	frames := serveScript(t, s, input)

	// One response per request, in request order; the notification is
	// swallowed without a frame.
	require.Len(t, frames, 3)
	assert.Equal(t, float64(1), frames[0].ID)
	assert.Equal(t, float64(2), frames[1].ID)
	assert.Equal(t, float64(3), frames[2].ID)
	for _, frame := range frames {
		assert.Equal(t, "2.0", frame.JSONRPC)
		assert.Nil(t, frame.Error)
	}
}

func TestServeParseErrorKeepsLoopAlive(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	input := `{"jsonrpc": "2.0", "id": 1, "method": "initialize"}
this is not json
{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}
`

	frames := serveScript(t, s, input)
	require.Len(t, frames, 3)

	// The malformed line answers with a null-id parse error.
	assert.Nil(t, frames[1].ID)
	require.NotNil(t, frames[1].Error)
	assert.Equal(t, mcp.PARSE_ERROR, frames[1].Error.Code)
	assert.Equal(t, "Parse error", frames[1].Error.Message)

	// The frames before and after it are ordinary results.
	assert.Equal(t, float64(1), frames[0].ID)
	assert.Nil(t, frames[0].Error)
	assert.Equal(t, float64(2), frames[2].ID)
	assert.Nil(t, frames[2].Error)
}

func TestServeOversizedLineKeepsLoopAlive(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	// One line over the frame cap, then a normal request that must still
	// be answered.
	input := strings.Repeat("a", maxFrameSize+1) + "\n" +
		`{"jsonrpc": "2.0", "id": 7, "method": "tools/list"}` + "\n"

	frames := serveScript(t, s, input)
	require.Len(t, frames, 2)

	// The oversized line answers with a null-id parse error.
	assert.Nil(t, frames[0].ID)
	require.NotNil(t, frames[0].Error)
	assert.Equal(t, mcp.PARSE_ERROR, frames[0].Error.Code)
	assert.Equal(t, "Parse error", frames[0].Error.Message)

	// The request behind it is answered normally.
	assert.Equal(t, float64(7), frames[1].ID)
	assert.Nil(t, frames[1].Error)
}

func TestServeOversizedFinalLine(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	// An oversized line with no trailing newline ends the input; the loop
	// answers it and then shuts down cleanly on end of input.
	frames := serveScript(t, s, strings.Repeat("a", maxFrameSize+1))
	require.Len(t, frames, 1)
	assert.Nil(t, frames[0].ID)
	require.NotNil(t, frames[0].Error)
	assert.Equal(t, mcp.PARSE_ERROR, frames[0].Error.Code)
	assert.False(t, s.Running())
}

func TestServeSkipsBlankLines(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	input := "\n   \n{\"jsonrpc\": \"2.0\", \"id\": 1, \"method\": \"tools/list\"}\n\n"

	frames := serveScript(t, s, input)
	require.Len(t, frames, 1)
	assert.Equal(t, float64(1), frames[0].ID)
}

func TestServeUnknownToolFrame(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	input := `{"jsonrpc": "2.0", "id": 1, "method": "tools/call", "params": {"name": "bogus", "arguments": {}}}
`

	frames := serveScript(t, s, input)
	require.Len(t, frames, 1)
	require.NotNil(t, frames[0].Error)
	assert.Equal(t, mcp.METHOD_NOT_FOUND, frames[0].Error.Code)
	assert.Equal(t, "Tool not found: bogus", frames[0].Error.Message)
	assert.Nil(t, frames[0].Result)
}

func TestServeEndOfInputIsClean(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	err := s.Serve(context.Background(), strings.NewReader(""), &bytes.Buffer{})
	assert.NoError(t, err)
	assert.False(t, s.Running())
}

func TestServeCancelledContext(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := `{"jsonrpc": "2.0", "id": 1, "method": "initialize"}
`
	err := s.Serve(ctx, strings.NewReader(input), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Running())
}

func TestServeFlushesBufferedWriter(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	var out bytes.Buffer
	// Large enough that nothing reaches out without an explicit flush.
	w := bufio.NewWriterSize(&out, 1<<20)

	input := `{"jsonrpc": "2.0", "id": 1, "method": "initialize"}
`
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(input), w))
	assert.Contains(t, out.String(), `"id":1`)
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestServeOneLinePerResponse(t *testing.T) {
	client := &fakeClient{}
	s := newTestServer(t, client)

	// Tool results are indented JSON, but the frame itself must stay on
	// one line.
	input := `{"jsonrpc": "2.0", "id": 1, "method": "tools/call", "params": {"name": "search_certificates", "arguments": {"query": "example.com"}}}
`
	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(input), &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 1)
}
