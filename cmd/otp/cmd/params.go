package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/trackpad"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/units"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List generator parameters",
		Long: `List every generator parameter with its flag, type, default and bounds.
The same keys are used by --config files, flags and the HTTP query.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listParams(cmd.OutOrStdout())
		},
	}
}

func listParams(w io.Writer) error {
	cfg := trackpad.DefaultConfig()
	group := ""
	for _, p := range trackpad.Parameters() {
		if p.Group != group {
			if group != "" {
				fmt.Fprintln(w)
			}
			group = p.Group
			fmt.Fprintln(w, styleTitle.Render(group))
		}

		def, err := trackpad.ParamValue(&cfg, p.Key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s %s %s\n",
			styleValue.Render(fmt.Sprintf("--%-18s", p.Key)),
			styleDim.Render(fmt.Sprintf("%-8s", p.Kind)),
			styleNumber.Render(def)+bounds(p))
		printDetail(w, "%s: %s", p.Name, p.Usage)
	}
	return nil
}

func bounds(p trackpad.Param) string {
	switch {
	case p.Min != nil && p.Max != nil:
		return styleDim.Render(fmt.Sprintf(" [%s..%s]", units.FormatMM(*p.Min), units.FormatMM(*p.Max)))
	case p.Min != nil:
		return styleDim.Render(fmt.Sprintf(" [>= %s]", units.FormatMM(*p.Min)))
	case p.Max != nil:
		return styleDim.Render(fmt.Sprintf(" [<= %s]", units.FormatMM(*p.Max)))
	}
	return ""
}
