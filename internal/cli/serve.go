package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/sector-mosaic/internal/config"
	"github.com/ironsheep/sector-mosaic/internal/server"
)

func newServeCmd(v *viper.Viper, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `serve exposes the mosaic tools over the Model Context Protocol.

Requests are read as JSON-RPC 2.0, one per line, from stdin and answered on
stdout. Logs go to stderr. Environment and config file values become the
defaults for any tool argument a client leaves out.

Environment variables:
  SECTOR_MOSAIC_LOG_LEVEL=debug    Enable debug logging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			if os.Getenv(config.EnvPrefix+"_LOG_LEVEL") == "debug" {
				cfg.Verbose = true
			}

			// Configure logging to stderr (stdout is for MCP protocol)
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

			if cfg.Verbose {
				log.Printf("sector-mosaic MCP server %s", info)
			}

			server.Version = info.Version
			srv := server.NewWithConfig(cfg)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
