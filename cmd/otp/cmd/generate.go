package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/trackpad"
)

func newGenerateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a .kicad_mod footprint",
		Long: `Generate a trackpad footprint. Parameters come from defaults, then the
--config file, then individual flags.

The output defaults to <name>.kicad_mod in the current directory; use
-o - for stdout.`,
		Args: cobra.NoArgs,
	}
	params := addParamFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (- for stdout)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := loggerFromContext(cmd.Context())

		cfg, err := params.config()
		if err != nil {
			return err
		}
		fp, err := pcb.Build(cfg, trackpad.WithLogger(logger))
		if err != nil {
			return err
		}

		if output == "-" {
			return pcb.WriteFootprint(cmd.OutOrStdout(), fp)
		}
		if output == "" {
			output = fp.Name + ".kicad_mod"
		}
		if err := pcb.WriteFootprintFile(output, fp); err != nil {
			return err
		}

		smd, tht := countPads(fp)
		logger.Debug("footprint written", "path", output, "pads", smd, "vias", tht, "lines", len(fp.Graphics))
		printSuccess(cmd.OutOrStdout(), "Wrote %s (%d pads, %d vias)", output, smd, tht)
		return nil
	}
	return cmd
}

func countPads(fp *pcb.Footprint) (smd, tht int) {
	for _, p := range fp.Pads {
		if p.IsThruHole() {
			tht++
		} else {
			smd++
		}
	}
	return smd, tht
}
