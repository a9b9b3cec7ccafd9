package pcb

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp/kicadsexp"
)

// ParseFootprint reads a single footprint from a .kicad_mod stream
func ParseFootprint(r io.Reader) (*Footprint, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint: %w", err)
	}
	if len(sexps) != 1 {
		return nil, fmt.Errorf("expected one footprint expression, got %d", len(sexps))
	}
	return parseFootprint(sexps[0])
}

// ParseFootprintFile reads a .kicad_mod file
func ParseFootprintFile(path string) (*Footprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	fp, err := ParseFootprint(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fp, nil
}

// parseFootprint reads (footprint "lib:name" ...). Legacy (module ...) roots
// are accepted too.
func parseFootprint(node kicadsexp.Sexp) (*Footprint, error) {
	head, err := sexp.GetNodeName(node)
	if err != nil {
		return nil, err
	}
	if head != "footprint" && head != "module" {
		return nil, fmt.Errorf("expected footprint, got %q", head)
	}

	fpName, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}
	fp := &Footprint{Name: fpName}
	if lib, name, ok := strings.Cut(fpName, ":"); ok {
		fp.Library, fp.Name = lib, name
	}

	if n, ok := sexp.FindNode(node, "version"); ok {
		if fp.Version, err = sexp.GetInt(n, 1); err != nil {
			return nil, fmt.Errorf("failed to parse version: %w", err)
		}
	}
	if n, ok := sexp.FindNode(node, "generator"); ok {
		fp.Generator, _ = sexp.GetString(n, 1)
	}
	if n, ok := sexp.FindNode(node, "layer"); ok {
		if fp.Layer, err = sexp.GetString(n, 1); err != nil {
			return nil, fmt.Errorf("failed to parse layer: %w", err)
		}
	}
	if n, ok := sexp.FindNode(node, "descr"); ok {
		fp.Description, _ = sexp.GetString(n, 1)
	}
	if n, ok := sexp.FindNode(node, "tags"); ok {
		fp.Tags, _ = sexp.GetString(n, 1)
	}
	if n, ok := sexp.FindNode(node, "attr"); ok {
		fp.Attributes = sexp.GetStrings(n)
	}
	if n, ok := sexp.FindNode(node, "at"); ok {
		if fp.Position, err = sexp.GetPosition(n); err != nil {
			return nil, fmt.Errorf("failed to parse footprint position: %w", err)
		}
	}

	for _, n := range sexp.FindAllNodes(node, "fp_text") {
		t, err := parseText(n)
		if err != nil {
			return nil, err
		}
		fp.Texts = append(fp.Texts, t)
	}
	// KiCad 8 stores reference and value as properties
	for _, n := range sexp.FindAllNodes(node, "property") {
		key, err1 := sexp.GetString(n, 1)
		val, err2 := sexp.GetString(n, 2)
		if err1 != nil || err2 != nil {
			continue
		}
		if key == "Reference" || key == "Value" {
			fp.Texts = append(fp.Texts, Text{Kind: strings.ToLower(key), Text: val})
		}
	}

	for _, n := range sexp.FindAllNodes(node, "fp_line") {
		g, err := parseLine(n)
		if err != nil {
			return nil, err
		}
		fp.Graphics = append(fp.Graphics, g)
	}

	for _, n := range sexp.FindAllNodes(node, "pad") {
		p, err := parsePad(n)
		if err != nil {
			return nil, err
		}
		fp.Pads = append(fp.Pads, p)
	}

	return fp, nil
}

// parsePad reads (pad "number" type shape (at x y [angle]) (size w h) ...)
func parsePad(node kicadsexp.Sexp) (Pad, error) {
	var pad Pad
	var err error

	if pad.Number, err = sexp.GetString(node, 1); err != nil {
		return pad, fmt.Errorf("failed to parse pad number: %w", err)
	}
	if pad.Type, err = sexp.GetString(node, 2); err != nil {
		return pad, fmt.Errorf("pad %q: failed to parse type: %w", pad.Number, err)
	}
	if pad.Shape, err = sexp.GetString(node, 3); err != nil {
		return pad, fmt.Errorf("pad %q: failed to parse shape: %w", pad.Number, err)
	}

	at, ok := sexp.FindNode(node, "at")
	if !ok {
		return pad, fmt.Errorf("pad %q: missing required 'at' position", pad.Number)
	}
	if pad.Position, err = sexp.GetPosition(at); err != nil {
		return pad, fmt.Errorf("pad %q: %w", pad.Number, err)
	}

	size, ok := sexp.FindNode(node, "size")
	if !ok {
		return pad, fmt.Errorf("pad %q: missing required 'size' field", pad.Number)
	}
	wh, err := sexp.GetPositionXY(size)
	if err != nil {
		return pad, fmt.Errorf("pad %q: size: %w", pad.Number, err)
	}
	pad.Size = Size{Width: wh.X, Height: wh.Y}

	if delta, ok := sexp.FindNode(node, "rect_delta"); ok {
		d, err := sexp.GetPositionXY(delta)
		if err != nil {
			return pad, fmt.Errorf("pad %q: rect_delta: %w", pad.Number, err)
		}
		pad.RectDelta = Size{Width: d.X, Height: d.Y}
	}

	// Oval drills (drill oval w h) keep their first dimension
	if drill, ok := sexp.FindNode(node, "drill"); ok {
		for i := 1; i < drill.LeafCount(); i++ {
			if d, err := sexp.GetFloat(drill, i); err == nil {
				pad.Drill = d
				break
			}
		}
	}

	layers, ok := sexp.FindNode(node, "layers")
	if !ok {
		return pad, fmt.Errorf("pad %q: missing required 'layers' field", pad.Number)
	}
	pad.Layers = LayerSet(sexp.GetStrings(layers))

	if id, ok := sexp.FindNode(node, "uuid"); ok {
		pad.UUID, _ = sexp.GetUUID(id)
	}
	return pad, nil
}

// parseLine reads (fp_line (start x y) (end x y) (stroke (width w) ...) (layer l))
func parseLine(node kicadsexp.Sexp) (Graphic, error) {
	var g Graphic

	start, ok := sexp.FindNode(node, "start")
	if !ok {
		return g, fmt.Errorf("fp_line: missing start")
	}
	end, ok := sexp.FindNode(node, "end")
	if !ok {
		return g, fmt.Errorf("fp_line: missing end")
	}
	var err error
	if g.Start, err = sexp.GetPositionXY(start); err != nil {
		return g, fmt.Errorf("fp_line start: %w", err)
	}
	if g.End, err = sexp.GetPositionXY(end); err != nil {
		return g, fmt.Errorf("fp_line end: %w", err)
	}

	// KiCad 5 wrote (width w) directly on the line
	widthParent := node
	if stroke, ok := sexp.FindNode(node, "stroke"); ok {
		widthParent = stroke
	}
	if w, ok := sexp.FindNode(widthParent, "width"); ok {
		if g.Width, err = sexp.GetFloat(w, 1); err != nil {
			return g, fmt.Errorf("fp_line width: %w", err)
		}
	}

	if l, ok := sexp.FindNode(node, "layer"); ok {
		g.Layer, _ = sexp.GetString(l, 1)
	}
	if id, ok := sexp.FindNode(node, "uuid"); ok {
		g.UUID, _ = sexp.GetUUID(id)
	}
	return g, nil
}

// parseText reads (fp_text kind "text" (at x y [angle]) (layer l) (effects ...))
func parseText(node kicadsexp.Sexp) (Text, error) {
	var t Text
	var err error

	if t.Kind, err = sexp.GetString(node, 1); err != nil {
		return t, fmt.Errorf("fp_text: %w", err)
	}
	if t.Text, err = sexp.GetString(node, 2); err != nil {
		return t, fmt.Errorf("fp_text %s: %w", t.Kind, err)
	}
	if at, ok := sexp.FindNode(node, "at"); ok {
		if t.Position, err = sexp.GetPosition(at); err != nil {
			return t, fmt.Errorf("fp_text %s: %w", t.Kind, err)
		}
	}
	if l, ok := sexp.FindNode(node, "layer"); ok {
		t.Layer, _ = sexp.GetString(l, 1)
	}
	if eff, ok := sexp.FindNode(node, "effects"); ok {
		if t.Effects, err = sexp.GetEffects(eff); err != nil {
			return t, fmt.Errorf("fp_text %s: %w", t.Kind, err)
		}
	}
	if id, ok := sexp.FindNode(node, "uuid"); ok {
		t.UUID, _ = sexp.GetUUID(id)
	}
	return t, nil
}
