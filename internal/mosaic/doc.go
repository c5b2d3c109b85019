// Package mosaic reduces a pixel grid to a mosaic of uniformly colored sectors.
//
// The work happens in two phases that always run in order:
//
//  1. ComputeSectorColors partitions the grid into square sectors of
//     SectorSize pixels and averages each color channel per sector.
//  2. RenderMosaic paints every output pixel with the color of the sector
//     that owns it, optionally masked to a circle around the sector center.
//
// Process runs both phases for a single configuration.
//
// # Sector Grid
//
// Sectors are counted with integer division:
//
//	cols = width / SectorSize
//	rows = height / SectorSize
//
// Pixels in a trailing partial column or row belong to no sector. They are
// never averaged, and the renderer colors them according to the configured
// EdgePolicy. Sector colors are stored row-major, so the sector at (col, row)
// lives at index row*cols + col.
//
// # Numeric Policy
//
// Channel sums are accumulated in uint64 and divided by SectorSize² with
// truncating integer division. A sector of alternating 255 and 0 values
// averages to 127, not 128.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner, matching
// the image package. Grids handed to this package are expected to start at
// (0,0); callers holding an image with a different origin should normalise it
// first (see imaging.NewPixelGrid).
package mosaic
