package mosaic

import "errors"

// ErrInvalidConfiguration is returned when the sector size or the sector color
// sequence cannot describe a valid sector grid for the image.
var ErrInvalidConfiguration = errors.New("invalid configuration")
