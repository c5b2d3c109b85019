package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

// SectorRegion returns the part of an image with the given bounds that is
// covered by complete sectors. It is empty when not a single sector fits.
func SectorRegion(bounds image.Rectangle, sectorSize int) image.Rectangle {
	cols, rows := mosaic.GridSize(bounds.Dx(), bounds.Dy(), sectorSize)
	return image.Rect(
		bounds.Min.X,
		bounds.Min.Y,
		bounds.Min.X+cols*sectorSize,
		bounds.Min.Y+rows*sectorSize,
	)
}

// TrimToSectors crops img to the region covered by complete sectors,
// dropping any trailing partial row or column. The result is anchored at (0,0).
func TrimToSectors(img image.Image, sectorSize int) (*image.NRGBA, error) {
	region := SectorRegion(img.Bounds(), sectorSize)
	if region.Empty() {
		return nil, errNoSectors(sectorSize, img.Bounds())
	}
	return imaging.Crop(img, region), nil
}
