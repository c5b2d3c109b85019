// Package imaging is the file-facing side of the sector mosaic tool.
//
// It decodes image files into pixel grids the mosaic package can average,
// encodes rendered mosaics back to files or streams, and provides the small
// helpers the command line and MCP server share: color parsing and
// reporting, trimming to the full-sector region, and a sector grid preview.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Images returned by this package are anchored at (0,0).
//
// # Formats
//
// Decoding supports PNG, JPEG, GIF, BMP and TIFF, with EXIF orientation applied
// to JPEG input. File output picks the format from the extension; stream
// output (stdout, base64) supports PNG, JPEG and BMP. Only PNG keeps the alpha
// channel, so transparent circle backgrounds need PNG output.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. PixelGrid is read-only after
// construction and may be shared between goroutines.
package imaging
