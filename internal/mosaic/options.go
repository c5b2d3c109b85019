package mosaic

import (
	"fmt"
	"image/color"
	"strings"
)

// ShapeMode selects how each sector is painted.
type ShapeMode int

const (
	// Circle paints only the pixels within Radius of the sector center.
	Circle ShapeMode = iota
	// Quad paints the whole sector.
	Quad
)

// String returns the configuration name of the mode.
func (m ShapeMode) String() string {
	switch m {
	case Quad:
		return "quad"
	case Circle:
		return "circle"
	default:
		return fmt.Sprintf("ShapeMode(%d)", int(m))
	}
}

// ParseShapeMode converts a configuration value ("quad" or "circle", case
// insensitive) into a ShapeMode.
func ParseShapeMode(s string) (ShapeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quad", "quads", "square":
		return Quad, nil
	case "circle", "circles":
		return Circle, nil
	default:
		return Circle, fmt.Errorf("%w: unknown shape mode %q (want quad or circle)", ErrInvalidConfiguration, s)
	}
}

// EdgePolicy decides the color of pixels in a trailing partial row or column.
type EdgePolicy int

const (
	// EdgeBackground paints pixels outside every full sector with the
	// background color.
	EdgeBackground EdgePolicy = iota
	// EdgeClamp paints them like the nearest full sector.
	EdgeClamp
)

// String returns the configuration name of the policy.
func (p EdgePolicy) String() string {
	switch p {
	case EdgeBackground:
		return "background"
	case EdgeClamp:
		return "clamp"
	default:
		return fmt.Sprintf("EdgePolicy(%d)", int(p))
	}
}

// ParseEdgePolicy converts "background" or "clamp" into an EdgePolicy.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "background", "bg":
		return EdgeBackground, nil
	case "clamp", "nearest":
		return EdgeClamp, nil
	default:
		return EdgeBackground, fmt.Errorf("%w: unknown edge policy %q (want background or clamp)", ErrInvalidConfiguration, s)
	}
}

// ProgressFunc receives progress notifications. done counts completed units
// (sector rows while averaging, pixel rows while rendering) out of total.
type ProgressFunc func(stage string, done, total int)

// Progress stage names.
const (
	StageAverage = "average"
	StageRender  = "render"
)

// Options configures a mosaic run.
type Options struct {
	// SectorSize is the side length of a sector in pixels. Must be >= 1.
	SectorSize int

	// Shape selects quad or circle rendering.
	Shape ShapeMode

	// Radius is the circle radius in pixels, measured from SectorCenter.
	// Zero keeps only the center pixel of each sector. Ignored in Quad mode.
	Radius float64

	// Background is emitted outside circles and, with EdgeBackground, for
	// pixels outside every full sector. The zero value is fully transparent.
	Background color.NRGBA

	// Edge selects the policy for trailing partial sectors.
	Edge EdgePolicy

	// Progress, if set, is called once per sector row and once per
	// rendered pixel row. It never changes the result.
	Progress ProgressFunc
}

// DefaultSectorSize matches the historic command-line default.
const DefaultSectorSize = 5

// DefaultRadius is the radius of the circle inscribed in a sector.
func DefaultRadius(sectorSize int) float64 {
	return float64(sectorSize) / 2.0
}

// DefaultOptions returns circle mode with 5 pixel sectors, inscribed circles,
// a transparent background and background-colored edges.
func DefaultOptions() Options {
	return Options{
		SectorSize: DefaultSectorSize,
		Shape:      Circle,
		Radius:     DefaultRadius(DefaultSectorSize),
	}
}

// Validate checks the options independently of any image.
func (o Options) Validate() error {
	if o.SectorSize < 1 {
		return fmt.Errorf("%w: sector size must be at least 1, got %d", ErrInvalidConfiguration, o.SectorSize)
	}
	if o.Radius < 0 {
		return fmt.Errorf("%w: radius must not be negative, got %g", ErrInvalidConfiguration, o.Radius)
	}
	if o.Shape != Quad && o.Shape != Circle {
		return fmt.Errorf("%w: unknown shape mode %d", ErrInvalidConfiguration, int(o.Shape))
	}
	if o.Edge != EdgeBackground && o.Edge != EdgeClamp {
		return fmt.Errorf("%w: unknown edge policy %d", ErrInvalidConfiguration, int(o.Edge))
	}
	return nil
}

func (o Options) report(stage string, done, total int) {
	if o.Progress != nil {
		o.Progress(stage, done, total)
	}
}
