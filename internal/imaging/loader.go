package imaging

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

// Cache holds decoded source images keyed by the path they were opened with,
// so that the sector tools can be called repeatedly on one file while it is
// decoded once.
//
// Entries never expire. Whoever writes a file that may already be cached
// must Evict its path, otherwise later loads return the old pixels.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]image.Image
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]image.Image)}
}

// Load returns the decoded image at path, opening it on the first request.
// Paths are compared as strings, so "a.png" and "./a.png" are cached twice.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	img, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = img
	c.mu.Unlock()
	return img, nil
}

// Evict drops path so that the next Load reads the file again.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Open decodes an image file without caching it.
//
// JPEG files carrying an EXIF orientation tag are rotated so that the pixel
// grid matches what a viewer would display.
func Open(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Dimensions is the pixel size of an image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LoadDimensions loads path through cache and reports its size.
func LoadDimensions(cache *Cache, path string) (*Dimensions, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &Dimensions{Width: b.Dx(), Height: b.Dy()}, nil
}

// SourceInfo describes an input image and how it divides into sectors.
type SourceInfo struct {
	Dimensions

	// Format is taken from the file extension ("png", "jpeg", "gif",
	// "tiff", "bmp") or is "unknown".
	Format        string `json:"format"`
	FileSizeBytes int64  `json:"file_size_bytes"`

	// HasTransparency reports pixels with alpha below 255. Averaging ignores
	// alpha, so such pixels contribute their stored RGB values.
	HasTransparency bool `json:"has_transparency"`

	SectorSize int `json:"sector_size"`
	Cols       int `json:"cols"`
	Rows       int `json:"rows"`
	Sectors    int `json:"sectors"`

	// TrailingColumns and TrailingRows count the pixels right of and below
	// the last complete sector. They are not averaged.
	TrailingColumns int `json:"trailing_columns"`
	TrailingRows    int `json:"trailing_rows"`
}

// Describe loads path through cache and reports its sector grid at
// sectorSize. A sector larger than the image yields zero sectors with every
// pixel trailing; only a size below 1 is an error.
func Describe(cache *Cache, path string, sectorSize int) (*SourceInfo, error) {
	if sectorSize < 1 {
		return nil, fmt.Errorf("%w: sector size must be at least 1, got %d", mosaic.ErrInvalidConfiguration, sectorSize)
	}
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	b := img.Bounds()
	cols, rows := mosaic.GridSize(b.Dx(), b.Dy(), sectorSize)

	translucent := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		translucent = !o.Opaque()
	}

	return &SourceInfo{
		Dimensions:      Dimensions{Width: b.Dx(), Height: b.Dy()},
		Format:          formatName(path),
		FileSizeBytes:   stat.Size(),
		HasTransparency: translucent,
		SectorSize:      sectorSize,
		Cols:            cols,
		Rows:            rows,
		Sectors:         cols * rows,
		TrailingColumns: b.Dx() - cols*sectorSize,
		TrailingRows:    b.Dy() - rows*sectorSize,
	}, nil
}

func formatName(path string) string {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(f.String())
}
