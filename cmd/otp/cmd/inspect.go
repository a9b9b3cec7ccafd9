package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/units"
)

func newInspectCmd() *cobra.Command {
	var electrodes bool

	cmd := &cobra.Command{
		Use:   "inspect <footprint.kicad_mod>",
		Short: "Summarize a footprint file",
		Long: `Display the pads, vias, lines and electrodes of a .kicad_mod file.

Electrodes are pads sharing a name; vias named v_<name> join them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := pcb.ParseFootprintFile(args[0])
			if err != nil {
				return fmt.Errorf("error parsing footprint: %w", err)
			}
			showFootprintSummary(cmd.OutOrStdout(), fp, args[0])
			if electrodes {
				showElectrodes(cmd.OutOrStdout(), fp)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&electrodes, "electrodes", "e", false, "list every electrode")
	return cmd
}

func fmtSize(bbox pcb.BoundingBox) string {
	if bbox.IsEmpty() {
		return "empty"
	}
	return units.FormatMM(bbox.Width()) + " x " + units.FormatMM(bbox.Height()) + " mm"
}

func showFootprintSummary(w io.Writer, fp *pcb.Footprint, filename string) {
	fmt.Fprintln(w, styleTitle.Render(fp.Name))
	printField(w, "File", filename)
	if fp.Library != "" {
		printField(w, "Library", fp.Library)
	}
	printField(w, "Version", fp.Version)
	printField(w, "Generator", fp.Generator)
	if fp.Description != "" {
		printField(w, "Description", fp.Description)
	}
	printField(w, "Size", fmtSize(fp.GetBoundingBox()))
	fmt.Fprintln(w)

	smd, tht := countPads(fp)
	fmt.Fprintln(w, styleHeader.Render("Copper"))
	printField(w, "SMD pads", styleNumber.Render(fmt.Sprint(smd)))
	printField(w, "Vias", styleNumber.Render(fmt.Sprint(tht)))
	printField(w, "Electrodes", styleNumber.Render(fmt.Sprint(len(fp.Electrodes()))))
	fmt.Fprintln(w)

	lines := make(map[string]int)
	for _, g := range fp.Graphics {
		lines[g.Layer]++
	}
	layers := make([]string, 0, len(lines))
	for l := range lines {
		layers = append(layers, l)
	}
	sort.Strings(layers)

	fmt.Fprintln(w, styleHeader.Render("Lines"))
	if len(layers) == 0 {
		printDetail(w, "none")
	}
	for _, l := range layers {
		printField(w, l, styleNumber.Render(fmt.Sprint(lines[l])))
	}

	if len(fp.Texts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleHeader.Render("Texts"))
		for _, t := range fp.Texts {
			printField(w, t.Kind, fmt.Sprintf("%s on %s", t.Text, t.Layer))
		}
	}
}

func showElectrodes(w io.Writer, fp *pcb.Footprint) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleHeader.Render("Electrodes"))
	for _, e := range fp.Electrodes() {
		printField(w, e.Name, fmt.Sprintf("%d pads, %d vias", len(e.Pads), len(e.Vias)))
		for _, p := range e.Pads {
			printDetail(w, "%s %s at (%s, %s) rot %s",
				p.Shape, fmtPadSize(p), units.FormatMM(p.Position.X), units.FormatMM(p.Position.Y),
				units.FormatMM(float64(p.Position.Angle)))
		}
	}
}

func fmtPadSize(p pcb.Pad) string {
	return units.FormatMM(p.Size.Width) + "x" + units.FormatMM(p.Size.Height)
}
