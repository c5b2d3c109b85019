package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

func errNoSectors(sectorSize int, bounds image.Rectangle) error {
	return fmt.Errorf("%w: sector size %d does not fit in a %dx%d image",
		mosaic.ErrInvalidConfiguration, sectorSize, bounds.Dx(), bounds.Dy())
}
