package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/trackpad"
)

const maxRenderSize = 8192

func newRenderCmd() *cobra.Command {
	var (
		output string
		theme  string
		size   string
		layers []string
	)

	cmd := &cobra.Command{
		Use:   "render [footprint.kicad_mod]",
		Short: "Render a PNG preview",
		Long: `Render a PNG preview of a generated footprint, or of an existing
.kicad_mod file when one is given.`,
		Args: cobra.MaximumNArgs(1),
	}
	params := addParamFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG (default <name>.png)")
	cmd.Flags().StringVar(&theme, "theme", renderer.ThemeClassic.Name, "colour theme")
	cmd.Flags().StringVar(&size, "size", "1024x512", "image size in pixels, WIDTHxHEIGHT")
	cmd.Flags().StringSliceVar(&layers, "layers", nil, "draw only these layers (e.g. F.Cu,B.Cu)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := loggerFromContext(cmd.Context())

		opts := renderer.DefaultOptions()
		var err error
		if opts.Width, opts.Height, err = renderer.ParseSize(size, maxRenderSize); err != nil {
			return err
		}
		if opts.Theme, err = renderer.ThemeByName(theme); err != nil {
			return err
		}
		if len(layers) > 0 {
			opts.Layers = renderer.NewLayerConfig()
			opts.Layers.ShowOnly(layers...)
		}

		fp, err := loadOrBuild(cmd, params, args)
		if err != nil {
			return err
		}
		if output == "" {
			output = fp.Name + ".png"
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		if err := renderer.RenderPNG(f, fp, opts); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}

		logger.Debug("preview written", "path", output, "theme", opts.Theme.Name, "width", opts.Width, "height", opts.Height)
		printSuccess(cmd.OutOrStdout(), "Rendered %s (%dx%d)", output, opts.Width, opts.Height)
		return nil
	}
	return cmd
}

// loadOrBuild reads the footprint file named in args, or generates one
// from the parameter flags
func loadOrBuild(cmd *cobra.Command, params *paramFlags, args []string) (*pcb.Footprint, error) {
	if len(args) == 1 {
		return pcb.ParseFootprintFile(args[0])
	}
	cfg, err := params.config()
	if err != nil {
		return nil, err
	}
	return pcb.Build(cfg, trackpad.WithLogger(loggerFromContext(cmd.Context())))
}
