// Package server implements the MCP (Model Context Protocol) server for image manipulation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the imaging façade
// through the MCP protocol. Each tool call loads a source image, applies one
// operation and either writes the result to a file or returns it base64-encoded.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection:
//   - image_info: Dimensions, format, color mode, alpha and EXIF orientation
//   - image_sample_color: Get color at pixel
//
// Geometry:
//   - image_resize: Shrink to fit a bounding box
//   - image_crop: Cut a window, clamped to the image
//   - image_thumb: Exact-size thumbnail from a centered window
//
// Compositing:
//   - image_add_image: Draw an overlay at an anchored position
//   - image_add_text: Render a text strip and composite it
//
// Pixel operations:
//   - image_filter: Apply a named filter
//
// Output:
//   - image_save: Re-encode or convert between PNG and JPEG
//
// Every image-producing tool accepts "output" and "format". GIF sources load
// fine but must be written as png or jpg.
//
// # Image Caching
//
// When cache.enabled is set the server keeps decoded images by path and hands
// out copies, so a tool never sees another tool's edits. Files written through
// "output" are evicted.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	srv, err := server.New(cfg, logger.New(cfg.Level()), version)
//	if err != nil {
//	    return err
//	}
//	return srv.Run()
package server
