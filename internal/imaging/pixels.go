package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

// PixelGrid exposes a decoded image to the mosaic package.
//
// The image is copied once into a non-premultiplied NRGBA buffer anchored at
// (0,0), so RGBAt returns the raw channel values stored in the file regardless
// of the decoder's concrete image type or bounds origin. Alpha is ignored.
type PixelGrid struct {
	img *image.NRGBA
}

// NewPixelGrid copies img into a PixelGrid.
func NewPixelGrid(img image.Image) *PixelGrid {
	return &PixelGrid{img: imaging.Clone(img)}
}

// Width returns the grid width in pixels.
func (g *PixelGrid) Width() int { return g.img.Rect.Dx() }

// Height returns the grid height in pixels.
func (g *PixelGrid) Height() int { return g.img.Rect.Dy() }

// RGBAt returns the color channels at (x, y).
func (g *PixelGrid) RGBAt(x, y int) mosaic.RGB {
	i := y*g.img.Stride + x*4
	return mosaic.RGB{R: g.img.Pix[i], G: g.img.Pix[i+1], B: g.img.Pix[i+2]}
}

var _ mosaic.PixelGrid = (*PixelGrid)(nil)
