// Package server implements the MCP (Model Context Protocol) server for the sector mosaic tools.
//
// This package provides a JSON-RPC 2.0 server that exposes sector averaging and
// mosaic rendering to MCP-compatible clients, so an assistant can inspect the
// averaged colors of an image or produce a mosaic without shelling out to the CLI.
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
// Basic Image Information:
//   - image_load: Dimensions, format and sector grid (cols, rows, trailing pixels)
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Sector Operations:
//   - image_sector_colors: Average color of every complete sector, row-major
//   - image_sector_color: Average color of the sector containing a pixel
//   - image_mosaic: Render the circle or quad mosaic (base64 PNG or file)
//   - image_sector_grid: Outline the sector grid and shade discarded pixels
//
// Omitted sector parameters fall back to the configuration the server was
// created with (see NewWithConfig), so SECTOR_MOSAIC_SIZE=8 in the environment
// of "sector-mosaic serve" changes the default for every tool call.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime of
// the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
