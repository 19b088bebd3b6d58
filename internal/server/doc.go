// Package server implements the MCP (Model Context Protocol) surface of the
// zone renamer.
//
// The server replaces a windowed front end: an MCP client loads a preview,
// drags zones onto it, checks the recognized text and then runs the batch.
// All state (preview geometry, zones) lives in the server for the lifetime
// of the process.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Preview:
//   - preview_load: Fit an image into the canvas, draw the zones over it
//
// Zones:
//   - zone_drag: Add a zone from a drag gesture in canvas coordinates
//   - zone_add: Add a zone in source pixels
//   - zone_list, zone_clear
//
// OCR:
//   - ocr_test: Recognize every zone of one image without copying
//
// Batch:
//   - batch_rename: Copy and rename every source image
//   - batch_cancel: Stop the running batch after the current file
//
// # Progress
//
// batch_rename runs off the request loop. While it runs the server emits
// notifications/progress messages carrying the request's progress token (or
// its ID when the client sent none), and keeps answering other requests. A
// second batch_rename while one is running fails.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "please define at least one OCR zone"
//
// # Usage
//
//	srv := server.New(ocr.NewTesseract("eng"), slog.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
