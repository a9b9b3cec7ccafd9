// Package cmd implements the otp command line.
package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is reported by --version
var Version = "0.3.0"

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "otp",
		Short: "OpenTraceTrackpad - capacitive trackpad footprint generator",
		Long: `OpenTraceTrackpad (otp) generates KiCad footprints for capacitive
trackpad sensors: interdigitated triangular pads, vias and routing.

Examples:
  otp generate -o pad.kicad_mod                   # Default 50x20 mm sensor
  otp generate --width 2in --edge-segments-x 8    # Override parameters
  otp generate --config pad.toml                  # Parameters from a file
  otp render -o pad.png --theme nord              # PNG preview
  otp view --width 80mm                           # Interactive preview
  otp inspect pad.kicad_mod                       # Summarize a footprint
  otp serve --addr :8080                          # HTTP generator`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newParamsCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// Execute runs the command line with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
