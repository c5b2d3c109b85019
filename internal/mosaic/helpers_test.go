package mosaic

import (
	"image"
	"image/color"
	"testing"
)

// testGrid is an in-memory PixelGrid.
type testGrid struct {
	w, h int
	pix  []RGB
}

func (g *testGrid) Width() int         { return g.w }
func (g *testGrid) Height() int        { return g.h }
func (g *testGrid) RGBAt(x, y int) RGB { return g.pix[y*g.w+x] }

// newTestGrid builds a grid by calling fn for every pixel.
func newTestGrid(t *testing.T, w, h int, fn func(x, y int) RGB) *testGrid {
	t.Helper()
	g := &testGrid{w: w, h: h, pix: make([]RGB, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.pix[y*w+x] = fn(x, y)
		}
	}
	return g
}

func uniformGrid(t *testing.T, w, h int, c RGB) *testGrid {
	t.Helper()
	return newTestGrid(t, w, h, func(int, int) RGB { return c })
}

// gridFromImage reads the RGB channels of an NRGBA image back into a grid.
func gridFromImage(t *testing.T, img *image.NRGBA) *testGrid {
	t.Helper()
	b := img.Bounds()
	return newTestGrid(t, b.Dx(), b.Dy(), func(x, y int) RGB {
		c := img.NRGBAAt(x, y)
		return RGB{R: c.R, G: c.G, B: c.B}
	})
}

func opaque(c RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
