package pcb

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp"
	ks "github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp/kicadsexp"
)

// Sexp converts the footprint to its file tree
func (fp *Footprint) Sexp() *ks.List {
	name := fp.Name
	if fp.Library != "" {
		name = fp.Library + ":" + name
	}

	root := ks.Node("footprint", ks.Quoted(name),
		ks.Node("version", ks.Symbol(strconv.Itoa(fp.Version))),
		ks.Node("generator", ks.Symbol(fp.Generator)),
		sexp.Layer(fp.Layer),
	)
	if fp.Description != "" {
		root.Append(ks.Node("descr", ks.Quoted(fp.Description)))
	}
	if fp.Tags != "" {
		root.Append(ks.Node("tags", ks.Quoted(fp.Tags)))
	}
	if len(fp.Attributes) > 0 {
		attr := ks.Node("attr")
		for _, a := range fp.Attributes {
			attr.Append(ks.Symbol(a))
		}
		root.Append(attr)
	}

	for _, t := range fp.Texts {
		root.Append(ks.Node("fp_text", ks.Symbol(t.Kind), ks.Quoted(t.Text),
			sexp.At(t.Position),
			sexp.Layer(t.Layer),
			sexp.EffectsNode(t.Effects),
			sexp.UUIDNode(t.UUID),
		))
	}

	for _, g := range fp.Graphics {
		root.Append(ks.Node("fp_line",
			sexp.XY("start", g.Start),
			sexp.XY("end", g.End),
			ks.Node("stroke", ks.Node("width", sexp.Num(g.Width)), ks.Node("type", ks.Symbol("solid"))),
			sexp.Layer(g.Layer),
			sexp.UUIDNode(g.UUID),
		))
	}

	for _, p := range fp.Pads {
		root.Append(padSexp(p))
	}
	return root
}

func padSexp(p Pad) *ks.List {
	n := ks.Node("pad", ks.Quoted(p.Number), ks.Symbol(p.Type), ks.Symbol(p.Shape),
		sexp.At(p.Position),
		sexp.SizeNode(p.Size),
	)
	if p.RectDelta != (Size{}) {
		n.Append(sexp.XY("rect_delta", Position{X: p.RectDelta.Width, Y: p.RectDelta.Height}))
	}
	if p.Drill > 0 {
		n.Append(ks.Node("drill", sexp.Num(p.Drill)))
	}
	n.Append(sexp.Layers(p.Layers...))
	if p.UUID != "" {
		n.Append(sexp.UUIDNode(p.UUID))
	}
	return n
}

// WriteFootprint encodes fp as a .kicad_mod file
func WriteFootprint(w io.Writer, fp *Footprint) error {
	if err := ks.Encode(w, fp.Sexp()); err != nil {
		return fmt.Errorf("failed to write footprint %s: %w", fp.Name, err)
	}
	return nil
}

// WriteFootprintFile writes fp to path, replacing any existing file
func WriteFootprintFile(path string, fp *Footprint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteFootprint(f, fp); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
