// Package config turns command-line flags, environment variables and an
// optional YAML file into validated mosaic options.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/sector-mosaic/internal/imaging"
	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SECTOR_MOSAIC_SIZE=8.
const EnvPrefix = "SECTOR_MOSAIC"

// Keys shared by the flag set, viper and the YAML file.
const (
	KeyInput      = "in"
	KeyOutput     = "out"
	KeyFormat     = "format"
	KeySize       = "size"
	KeyRadius     = "rad"
	KeyQuad       = "quad"
	KeyShape      = "shape"
	KeyBackground = "background"
	KeyEdge       = "edge"
	KeyTrim       = "trim"
	KeyVerbose    = "verbose"
)

// StdoutPath selects standard output as the output destination.
const StdoutPath = "-"

// Config is the raw, string-typed run configuration.
type Config struct {
	Input  string `mapstructure:"in"`
	Output string `mapstructure:"out"`

	// Format is only consulted when writing to stdout. Files use their
	// extension.
	Format string `mapstructure:"format"`

	SectorSize int `mapstructure:"size"`

	// Radius is nil unless set explicitly, in which case it is used as is,
	// zero included. Nil means the inscribed circle, SectorSize/2.
	Radius *float64 `mapstructure:"-"`

	// Quad is the historic boolean switch. Shape, when set, wins.
	Quad  bool   `mapstructure:"quad"`
	Shape string `mapstructure:"shape"`

	Background string `mapstructure:"background"`
	Edge       string `mapstructure:"edge"`
	Trim       bool   `mapstructure:"trim"`
	Verbose    bool   `mapstructure:"verbose"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Input:      "input.png",
		Output:     "output.png",
		Format:     "png",
		SectorSize: mosaic.DefaultSectorSize,
		Background: "transparent",
		Edge:       mosaic.EdgeBackground.String(),
	}
}

// SetDefaults registers Default() on v so that unset keys resolve to it.
// The radius has no default so that IsSet can tell an explicit 0 apart.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyInput, d.Input)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeySize, d.SectorSize)
	v.SetDefault(KeyQuad, d.Quad)
	v.SetDefault(KeyShape, d.Shape)
	v.SetDefault(KeyBackground, d.Background)
	v.SetDefault(KeyEdge, d.Edge)
	v.SetDefault(KeyTrim, d.Trim)
	v.SetDefault(KeyVerbose, d.Verbose)
}

// BindEnv makes v read SECTOR_MOSAIC_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// FromViper decodes the resolved settings held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if v.IsSet(KeyRadius) {
		r := v.GetFloat64(KeyRadius)
		c.Radius = &r
	}
	return c, nil
}

// ShapeMode resolves Shape and Quad into a mosaic.ShapeMode.
func (c Config) ShapeMode() (mosaic.ShapeMode, error) {
	if c.Shape != "" {
		return mosaic.ParseShapeMode(c.Shape)
	}
	if c.Quad {
		return mosaic.Quad, nil
	}
	return mosaic.Circle, nil
}

// Options converts the configuration into mosaic options, validating every
// field on the way. Errors wrap mosaic.ErrInvalidConfiguration.
func (c Config) Options() (mosaic.Options, error) {
	shape, err := c.ShapeMode()
	if err != nil {
		return mosaic.Options{}, err
	}

	edge := mosaic.EdgeBackground
	if c.Edge != "" {
		if edge, err = mosaic.ParseEdgePolicy(c.Edge); err != nil {
			return mosaic.Options{}, err
		}
	}

	background, err := imaging.ParseColor(c.Background)
	if err != nil {
		return mosaic.Options{}, fmt.Errorf("%w: background: %v", mosaic.ErrInvalidConfiguration, err)
	}

	radius := mosaic.DefaultRadius(c.SectorSize)
	if c.Radius != nil {
		radius = *c.Radius
	}

	opts := mosaic.Options{
		SectorSize: c.SectorSize,
		Shape:      shape,
		Radius:     radius,
		Background: background,
		Edge:       edge,
	}
	if err := opts.Validate(); err != nil {
		return mosaic.Options{}, err
	}
	return opts, nil
}

// Validate checks the whole configuration, including input and output
// settings that the mosaic options do not cover.
func (c Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, fmt.Errorf("%w: input path is required", mosaic.ErrInvalidConfiguration))
	}
	if c.Output == "" {
		errs = append(errs, fmt.Errorf("%w: output path is required", mosaic.ErrInvalidConfiguration))
	}
	if c.Output == StdoutPath {
		if _, err := imaging.EncoderFor(c.Format); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", mosaic.ErrInvalidConfiguration, err))
		}
	}
	if _, err := c.Options(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
