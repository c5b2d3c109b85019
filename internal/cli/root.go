// Package cli implements the sector-mosaic command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/sector-mosaic/internal/config"
	"github.com/ironsheep/sector-mosaic/internal/imaging"
	"github.com/ironsheep/sector-mosaic/internal/mosaic"
)

// BuildInfo is reported by --version.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", b.Version, b.BuildTime, b.GitCommit)
}

// NewRootCmd builds the command tree. Each call gets its own viper instance.
func NewRootCmd(info BuildInfo) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sector-mosaic [input]",
		Short: "Reduce an image to a mosaic of uniformly colored sectors",
		Long: `sector-mosaic partitions an image into square sectors, averages the color
of each sector and renders every sector as a filled square or as a circle
inscribed in it.

Pixels in a trailing row or column that does not fill a complete sector are
not averaged. By default they are painted with the background color; use
--edge clamp to extend the nearest sector over them instead, or --trim to
crop them off.

Examples:
  # Circles of radius 2.5 on 5 pixel sectors (the defaults)
  sector-mosaic --in photo.jpg --out mosaic.png

  # 16 pixel squares
  sector-mosaic photo.jpg -o blocks.png --size 16 --quad

  # Larger circles on a white background, as JPEG on stdout
  sector-mosaic photo.jpg --size 10 --rad 6 --background '#FFFFFF' -o - -f jpeg > out.jpg

  # Start the MCP server
  sector-mosaic serve`,
		Version:       info.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set(config.KeyInput, args[0])
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			return runMosaic(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sector-mosaic.yaml)")
	rootCmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "log progress for every sector row")

	flags := rootCmd.Flags()
	flags.StringP(config.KeyInput, "i", config.Default().Input, "input image (png, jpeg, gif, bmp, tiff)")
	flags.StringP(config.KeyOutput, "o", config.Default().Output, "output image, format chosen by extension; '-' writes to stdout")
	flags.StringP(config.KeyFormat, "f", config.Default().Format, "stdout output format (png|jpeg|bmp)")
	flags.IntP(config.KeySize, "s", mosaic.DefaultSectorSize, "sector size in pixels")
	flags.Float64P(config.KeyRadius, "r", 0, "circle radius in pixels (default size/2)")
	flags.Bool(config.KeyQuad, false, "render filled squares instead of circles")
	flags.Lookup(config.KeyQuad).NoOptDefVal = "true"
	flags.String(config.KeyShape, "", "sector shape (circle|quad); overrides --quad")
	flags.String(config.KeyBackground, config.Default().Background, "color outside circles and full sectors: transparent, #RRGGBB or #RRGGBBAA")
	flags.String(config.KeyEdge, config.Default().Edge, "trailing partial sectors: background or clamp")
	flags.Bool(config.KeyTrim, false, "crop the output to the region covered by full sectors")

	for _, key := range []string{
		config.KeyInput, config.KeyOutput, config.KeyFormat, config.KeySize, config.KeyRadius,
		config.KeyQuad, config.KeyShape, config.KeyBackground, config.KeyEdge, config.KeyTrim,
	} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}
	_ = v.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup(config.KeyVerbose))

	rootCmd.AddCommand(newServeCmd(v, info))
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute(info BuildInfo) {
	if err := NewRootCmd(info).Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	config.BindEnv(v)

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		// Search config in home directory with name ".sector-mosaic" (without extension).
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".sector-mosaic")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

// newLogger writes plain lines, with timestamps in verbose mode.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	flags := 0
	if verbose {
		flags = log.Ltime | log.Lmicroseconds
	}
	return log.New(w, "", flags)
}

func runMosaic(stdout, stderr io.Writer, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.Verbose)

	img, err := imaging.Open(cfg.Input)
	if err != nil {
		return err
	}
	grid := imaging.NewPixelGrid(img)

	shapes := "circles"
	if opts.Shape == mosaic.Quad {
		shapes = "quads"
	}
	logger.Printf("%s is %dx%d. Processing with %d/%g as size/rad. Using %s",
		cfg.Input, grid.Width(), grid.Height(), opts.SectorSize, opts.Radius, shapes)

	if cfg.Verbose {
		opts.Progress = func(stage string, done, total int) {
			if stage == mosaic.StageAverage {
				logger.Printf("averaged sector row %d of %d", done, total)
			}
		}
	}

	result, err := mosaic.Process(grid, opts)
	if err != nil {
		return err
	}
	logger.Printf("Finished processing image. %d sectors", len(result.Colors))

	out := result.Image
	if cfg.Trim {
		if out, err = imaging.TrimToSectors(out, opts.SectorSize); err != nil {
			return err
		}
	}

	if cfg.Output == config.StdoutPath {
		return imaging.Encode(stdout, out, cfg.Format)
	}
	logger.Printf("Saving image to %s", cfg.Output)
	return imaging.Save(out, cfg.Output)
}
