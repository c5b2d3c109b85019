package mosaic

import "fmt"

// RGB is an 8-bit color triple. It is used both for input pixels and for
// sector colors, since a truncated mean of 8-bit values fits in 8 bits.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// PixelGrid is a read-only, decoded image with its origin at (0,0).
type PixelGrid interface {
	Width() int
	Height() int
	// RGBAt returns the raw channel values at (x, y). Callers only pass
	// in-bounds coordinates.
	RGBAt(x, y int) RGB
}

// ComputeSectorColors averages every complete sector of grid.
//
// Sectors are visited row-major and the result has exactly cols*rows entries,
// where cols = width/sectorSize and rows = height/sectorSize. Each channel is
// summed over the sectorSize² pixels of its sector and divided with truncation.
//
// It returns ErrInvalidConfiguration if sectorSize is below 1 or larger than
// either dimension of the grid.
//
// progress, if non-nil, is called after each sector row with StageAverage.
func ComputeSectorColors(grid PixelGrid, sectorSize int, progress ProgressFunc) ([]RGB, error) {
	if sectorSize < 1 {
		return nil, fmt.Errorf("%w: sector size must be at least 1, got %d", ErrInvalidConfiguration, sectorSize)
	}
	width, height := grid.Width(), grid.Height()
	cols, rows := GridSize(width, height, sectorSize)
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: sector size %d does not fit in a %dx%d image",
			ErrInvalidConfiguration, sectorSize, width, height)
	}

	area := uint64(sectorSize) * uint64(sectorSize)
	colors := make([]RGB, 0, cols*rows)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			colors = append(colors, averageSector(grid, SectorOrigin(col, row, sectorSize), sectorSize, area))
		}
		if progress != nil {
			progress(StageAverage, row+1, rows)
		}
	}

	return colors, nil
}

// averageSector sums one sector into a fresh accumulator. uint64 cannot
// overflow for 8-bit channels at any sector size that fits in memory.
func averageSector(grid PixelGrid, origin Point, sectorSize int, area uint64) RGB {
	var sumR, sumG, sumB uint64
	for y := origin.Y; y < origin.Y+sectorSize; y++ {
		for x := origin.X; x < origin.X+sectorSize; x++ {
			c := grid.RGBAt(x, y)
			sumR += uint64(c.R)
			sumG += uint64(c.G)
			sumB += uint64(c.B)
		}
	}
	return RGB{
		R: uint8(sumR / area),
		G: uint8(sumG / area),
		B: uint8(sumB / area),
	}
}
