package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceTrackpad/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve footprints over HTTP",
		Long: `Start an HTTP server generating footprints on request.

Routes:
  GET /parameters    parameter table as JSON
  GET /footprint     .kicad_mod, query keys are parameter flags
  GET /preview.png   PNG preview, also takes size=WxH and theme

Parameter flags and --config set the defaults requests start from.`,
		Args: cobra.NoArgs,
	}
	params := addParamFlags(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := params.config()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		srv := server.New(cfg, loggerFromContext(cmd.Context()))
		return srv.ListenAndServe(cmd.Context(), addr)
	}
	return cmd
}
