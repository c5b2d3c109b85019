package mosaic

import (
	"fmt"
	"image"
	"image/color"
)

// RenderMosaic builds a width×height image from the sector colors produced by
// ComputeSectorColors for the same dimensions and opts.SectorSize.
//
// Every pixel takes the color of its owning sector at full opacity. In Circle
// mode, pixels farther than opts.Radius from the sector center get
// opts.Background instead. Pixels in a trailing partial row or column follow
// opts.Edge.
//
// It returns ErrInvalidConfiguration if the options are invalid or if colors
// does not hold exactly one entry per complete sector.
func RenderMosaic(width, height int, colors []RGB, opts Options) (*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	size := opts.SectorSize
	cols, rows := GridSize(width, height, size)
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: sector size %d does not fit in a %dx%d image",
			ErrInvalidConfiguration, size, width, height)
	}
	if len(colors) != cols*rows {
		return nil, fmt.Errorf("%w: got %d sector colors for a %dx%d sector grid",
			ErrInvalidConfiguration, len(colors), cols, rows)
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		row := y / size
		for x := 0; x < width; x++ {
			col := x / size
			c := pixelColor(Point{X: x, Y: y}, col, row, cols, rows, colors, opts)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
		opts.report(StageRender, y+1, height)
	}

	return out, nil
}

func pixelColor(p Point, col, row, cols, rows int, colors []RGB, opts Options) color.NRGBA {
	if col >= cols || row >= rows {
		if opts.Edge != EdgeClamp {
			return opts.Background
		}
		col = min(col, cols-1)
		row = min(row, rows-1)
	}

	if opts.Shape == Circle {
		center := SectorCenter(col, row, opts.SectorSize)
		if Distance(p, center) > opts.Radius {
			return opts.Background
		}
	}

	c := colors[row*cols+col]
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Result is the outcome of Process.
type Result struct {
	// Image has the same dimensions as the input grid.
	Image *image.NRGBA

	// Colors holds one entry per complete sector, row-major.
	Colors []RGB

	// Cols and Rows are the number of complete sectors along each axis.
	Cols int
	Rows int
}

// Process averages grid and renders the mosaic. Averaging finishes before any
// output pixel is produced.
func Process(grid PixelGrid, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	colors, err := ComputeSectorColors(grid, opts.SectorSize, opts.Progress)
	if err != nil {
		return nil, err
	}
	img, err := RenderMosaic(grid.Width(), grid.Height(), colors, opts)
	if err != nil {
		return nil, err
	}
	cols, rows := GridSize(grid.Width(), grid.Height(), opts.SectorSize)
	return &Result{
		Image:  img,
		Colors: colors,
		Cols:   cols,
		Rows:   rows,
	}, nil
}

// SectorAt returns the index of the sector owning pixel (x, y), or false when
// the pixel lies outside every complete sector.
func SectorAt(x, y, width, height, sectorSize int) (int, bool) {
	cols, rows := GridSize(width, height, sectorSize)
	if x < 0 || y < 0 || cols == 0 || rows == 0 {
		return 0, false
	}
	col, row := x/sectorSize, y/sectorSize
	if col >= cols || row >= rows {
		return 0, false
	}
	return row*cols + col, true
}
