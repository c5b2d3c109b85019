package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

// SectorGridResult contains the image with the sector grid drawn over it.
type SectorGridResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	SectorSize  int    `json:"sector_size"`
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
}

// trailingShade darkens pixels that belong to no sector.
var trailingShade = color.NRGBA{0, 0, 0, 96}

// SectorGrid draws the sector partition of img: a line along every sector
// boundary, and a shaded overlay on trailing pixels that no sector covers.
func SectorGrid(img image.Image, sectorSize int, lineColor color.NRGBA) (*image.NRGBA, error) {
	bounds := img.Bounds()
	region := SectorRegion(bounds, sectorSize)
	if region.Empty() {
		return nil, errNoSectors(sectorSize, bounds)
	}

	result := imaging.Clone(img)
	width, height := result.Rect.Dx(), result.Rect.Dy()
	inside := region.Sub(bounds.Min)

	shade := image.NewUniform(trailingShade)
	if inside.Max.X < width {
		draw.Draw(result, image.Rect(inside.Max.X, 0, width, height), shade, image.Point{}, draw.Over)
	}
	if inside.Max.Y < height {
		draw.Draw(result, image.Rect(0, inside.Max.Y, inside.Max.X, height), shade, image.Point{}, draw.Over)
	}

	line := image.NewUniform(lineColor)
	for x := sectorSize; x < inside.Max.X; x += sectorSize {
		draw.Draw(result, image.Rect(x, 0, x+1, inside.Max.Y), line, image.Point{}, draw.Over)
	}
	for y := sectorSize; y < inside.Max.Y; y += sectorSize {
		draw.Draw(result, image.Rect(0, y, inside.Max.X, y+1), line, image.Point{}, draw.Over)
	}

	return result, nil
}

// SectorGridOverlay draws the sector grid and returns it as a base64 PNG.
func SectorGridOverlay(img image.Image, sectorSize int, lineColorHex string) (*SectorGridResult, error) {
	lineColor, err := ParseColor(lineColorHex)
	if err != nil || lineColor.A == 0 {
		lineColor = color.NRGBA{255, 0, 0, 128} // Default: semi-transparent red
	}

	result, err := SectorGrid(img, sectorSize, lineColor)
	if err != nil {
		return nil, err
	}

	encoded, err := EncodeBase64PNG(result)
	if err != nil {
		return nil, err
	}

	cols, rows := mosaic.GridSize(result.Rect.Dx(), result.Rect.Dy(), sectorSize)
	return &SectorGridResult{
		Width:       result.Rect.Dx(),
		Height:      result.Rect.Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		SectorSize:  sectorSize,
		Cols:        cols,
		Rows:        rows,
	}, nil
}
