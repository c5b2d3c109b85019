package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "input.png", c.Input)
	assert.Equal(t, "output.png", c.Output)
	assert.Equal(t, 5, c.SectorSize)
	assert.False(t, c.Quad)
	require.NoError(t, c.Validate())

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, mosaic.Circle, opts.Shape)
	assert.Equal(t, mosaic.EdgeBackground, opts.Edge)
	assert.Equal(t, color.NRGBA{}, opts.Background)
	assert.Nil(t, c.Radius)
	assert.Equal(t, 2.5, opts.Radius, "unset radius is half the sector size")
}

func floatPtr(f float64) *float64 { return &f }

func TestConfig_ShapeMode(t *testing.T) {
	tests := []struct {
		name  string
		quad  bool
		shape string
		want  mosaic.ShapeMode
	}{
		{"default circle", false, "", mosaic.Circle},
		{"quad switch", true, "", mosaic.Quad},
		{"shape wins over quad", true, "circle", mosaic.Circle},
		{"shape quad", false, "quad", mosaic.Quad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Quad = tt.quad
			c.Shape = tt.shape

			got, err := c.ShapeMode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	c := Default()
	c.SectorSize = 8
	c.Radius = floatPtr(3.5)
	c.Background = "#FFFFFF"
	c.Edge = "clamp"

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, 8, opts.SectorSize)
	assert.Equal(t, 3.5, opts.Radius)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, opts.Background)
	assert.Equal(t, mosaic.EdgeClamp, opts.Edge)
}

func TestConfig_OptionsRadius(t *testing.T) {
	c := Default()
	c.SectorSize = 8

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, 4.0, opts.Radius)

	c.Radius = floatPtr(0)
	opts, err = c.Options()
	require.NoError(t, err)
	assert.Equal(t, 0.0, opts.Radius, "explicit zero radius is kept")
}

func TestConfig_OptionsErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero size", func(c *Config) { c.SectorSize = 0 }},
		{"negative size", func(c *Config) { c.SectorSize = -2 }},
		{"negative radius", func(c *Config) { c.Radius = floatPtr(-1) }},
		{"bad shape", func(c *Config) { c.Shape = "hexagon" }},
		{"bad edge", func(c *Config) { c.Edge = "wrap" }},
		{"bad background", func(c *Config) { c.Background = "#12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)

			_, err := c.Options()
			assert.ErrorIs(t, err, mosaic.ErrInvalidConfiguration)
			assert.ErrorIs(t, c.Validate(), mosaic.ErrInvalidConfiguration)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	c := Default()
	c.Input = ""
	c.Output = ""
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input path is required")
	assert.Contains(t, err.Error(), "output path is required")

	c = Default()
	c.Output = StdoutPath
	c.Format = "webp"
	assert.ErrorIs(t, c.Validate(), mosaic.ErrInvalidConfiguration)

	c.Format = "jpeg"
	assert.NoError(t, c.Validate())
}

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	c, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestFromViper_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mosaic.yaml")
	yaml := []byte("in: photo.jpg\nout: tiles.png\nsize: 12\nquad: true\nbackground: \"#000000\"\nedge: clamp\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", c.Input)
	assert.Equal(t, "tiles.png", c.Output)
	assert.Equal(t, 12, c.SectorSize)
	assert.True(t, c.Quad)
	assert.Equal(t, "clamp", c.Edge)
	assert.Equal(t, "png", c.Format, "unset keys keep their defaults")

	assert.Nil(t, c.Radius)

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, mosaic.Quad, opts.Shape)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, opts.Background)
}

func TestFromViper_ExplicitZeroRadius(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mosaic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 10\nrad: 0\n"), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := FromViper(v)
	require.NoError(t, err)
	require.NotNil(t, c.Radius)
	assert.Equal(t, 0.0, *c.Radius)

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, 0.0, opts.Radius)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("SECTOR_MOSAIC_SIZE", "9")
	t.Setenv("SECTOR_MOSAIC_SHAPE", "quad")
	t.Setenv("SECTOR_MOSAIC_RAD", "1.5")

	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	c, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9, c.SectorSize)
	assert.Equal(t, "quad", c.Shape)
	require.NotNil(t, c.Radius)
	assert.Equal(t, 1.5, *c.Radius)
}
