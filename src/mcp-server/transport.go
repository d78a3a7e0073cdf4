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
	"errors"
	"fmt"
	"io"

	"github.com/joswr1ght/sslmate-mcp/src/internal/helper/gc"
	"github.com/joswr1ght/sslmate-mcp/src/internal/helper/jsonrpc"
	"github.com/mark3labs/mcp-go/mcp"
)

// maxFrameSize bounds a single newline-delimited request frame.
const maxFrameSize = 4 * 1024 * 1024

// errFrameTooLarge reports a request line that exceeded maxFrameSize. The
// oversized line is answered like any other unparseable input instead of
// terminating the loop.
var errFrameTooLarge = errors.New("request frame exceeds size limit")

// flusher is satisfied by buffered writers that need an explicit flush so
// each response frame reaches the consumer immediately.
type flusher interface {
	Flush() error
}

// Serve runs the stdio transport loop: read one line, decode it as one
// JSON value, dispatch, and write the response (if any) as one compact JSON
// line, flushed immediately.
//
// The loop is strictly sequential, so responses leave the wire in the order
// their requests were read. End of input terminates the loop cleanly. A
// line that fails to parse, or exceeds the frame size limit, yields a
// parse-error frame with a null ID and the loop continues. The loop owns
// the running flag: set on entry, cleared on exit regardless of cause.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.running.Store(true)
	defer s.running.Store(false)

	s.log.Printf("starting %s MCP server", s.name)
	defer s.log.Printf("MCP server stopped")

	reader := bufio.NewReaderSize(r, 64*1024)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, readErr := readFrame(reader)
		if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, errFrameTooLarge) {
			return fmt.Errorf("transport read: %w", readErr)
		}

		var resp *jsonrpc.Response
		if errors.Is(readErr, errFrameTooLarge) {
			s.log.Errorf("dropping request frame over %d bytes", maxFrameSize)
			resp = jsonrpc.NewError(nil, mcp.PARSE_ERROR, "Parse error")
		} else {
			line = bytes.TrimSpace(line)
			if len(line) > 0 {
				var req map[string]any
				if err := json.Unmarshal(line, &req); err != nil {
					s.log.Errorf("invalid JSON received: %v", err)
					resp = jsonrpc.NewError(nil, mcp.PARSE_ERROR, "Parse error")
				} else {
					resp = s.Dispatch(ctx, req)
				}
			}
		}

		// Notifications and blank lines put nothing on the wire.
		if resp != nil {
			if err := writeFrame(w, resp); err != nil {
				return fmt.Errorf("transport write: %w", err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			// End of input is a clean shutdown, not an error.
			return nil
		}
	}
}

// readFrame reads one newline-delimited frame, accumulating across buffer
// refills up to maxFrameSize. An over-long line is drained through its
// terminating newline so the next frame starts clean, then reported as
// errFrameTooLarge.
func readFrame(reader *bufio.Reader) ([]byte, error) {
	var frame []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		if len(frame)+len(chunk) > maxFrameSize {
			for errors.Is(err, bufio.ErrBufferFull) {
				_, err = reader.ReadSlice('\n')
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return nil, errFrameTooLarge
		}
		frame = append(frame, chunk...)
		switch {
		case err == nil, errors.Is(err, io.EOF):
			return frame, err
		case errors.Is(err, bufio.ErrBufferFull):
			// No newline in the buffer yet, keep accumulating.
		default:
			return frame, err
		}
	}
}

// writeFrame serializes one response as a single compact JSON line and
// flushes it so the line-by-line consumer sees the reply promptly.
func writeFrame(w io.Writer, resp *jsonrpc.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		// Tool results are required to be JSON-serializable, so this is an
		// internal fault; answer it as one rather than dropping the frame.
		fallback := jsonrpc.NewError(resp.ID, mcp.INTERNAL_ERROR, "Internal error: unserializable response")
		if data, err = json.Marshal(fallback); err != nil {
			return err
		}
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	buf.Write(data)
	buf.WriteByte('\n')

	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
