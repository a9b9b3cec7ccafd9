package renderer

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp"
)

// ShapeKind tells a backend how to draw a Shape
type ShapeKind int

const (
	ShapePolygon ShapeKind = iota
	ShapeCircle
	ShapeSegment
)

// Shape is one filled primitive in world coordinates (mm)
type Shape struct {
	Kind   ShapeKind
	Layer  string
	Points []sexp.Position // polygon corners, or segment start and end
	Center sexp.Position   // circle
	Radius float64         // circle
	Width  float64         // segment
	Color  color.NRGBA
}

// drawOrder lists graphic layers back to front; pads and vias go after the
// copper layers
var drawOrder = []string{"B.Cu", "F.Cu", "F.SilkS", "F.Fab"}

// Scene flattens a footprint into shapes, back to front. Hidden layers
// are skipped. Texts are not drawn.
func Scene(fp *pcb.Footprint, theme Theme, layers *LayerConfig) []Shape {
	var shapes []Shape

	segments := func(layer string) {
		if !layers.IsVisible(layer) {
			return
		}
		for _, g := range fp.GraphicsOn(layer) {
			shapes = append(shapes, Shape{
				Kind:   ShapeSegment,
				Layer:  layer,
				Points: []sexp.Position{fp.TransformPosition(g.Start), fp.TransformPosition(g.End)},
				Width:  g.Width,
				Color:  theme.LayerColor(layer),
			})
		}
	}

	segments("B.Cu")
	segments("F.Cu")

	for _, p := range fp.Pads {
		if p.IsThruHole() {
			continue
		}
		if !layers.IsVisible("F.Cu") || !p.Layers.Has("F.Cu") {
			continue
		}
		outline := p.Outline()
		for i := range outline {
			outline[i] = fp.TransformPosition(outline[i])
		}
		shapes = append(shapes, Shape{Kind: ShapePolygon, Layer: "F.Cu", Points: outline, Color: theme.Pad})
	}

	if layers.IsVisible("F.Cu") || layers.IsVisible("B.Cu") {
		for _, p := range fp.Pads {
			if !p.IsThruHole() {
				continue
			}
			c := fp.TransformPosition(p.Position.Position)
			shapes = append(shapes, Shape{Kind: ShapeCircle, Layer: "*.Cu", Center: c, Radius: p.Size.Width / 2, Color: theme.Via})
			if p.Drill > 0 {
				shapes = append(shapes, Shape{Kind: ShapeCircle, Layer: "*.Cu", Center: c, Radius: p.Drill / 2, Color: theme.Drill})
			}
		}
	}

	segments("F.SilkS")
	segments("F.Fab")

	// Anything on layers not covered above
	known := make(map[string]bool, len(drawOrder))
	for _, l := range drawOrder {
		known[l] = true
	}
	seen := make(map[string]bool)
	for _, g := range fp.Graphics {
		if !known[g.Layer] && !seen[g.Layer] {
			seen[g.Layer] = true
			segments(g.Layer)
		}
	}

	return shapes
}
