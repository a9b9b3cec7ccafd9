// Package pcb models KiCad footprints: it builds them from generated
// primitives, writes .kicad_mod files and reads them back.
package pcb

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp"
)

// Shared types from the sexp package
type Position = sexp.Position
type Angle = sexp.Angle
type PositionAngle = sexp.PositionAngle
type Size = sexp.Size
type BoundingBox = sexp.BoundingBox
type UUID = sexp.UUID
type Effects = sexp.Effects
type Font = sexp.Font

var NewBoundingBox = sexp.NewBoundingBox

// File format constants written into every footprint
const (
	FormatVersion = 20221018
	GeneratorName = "otp"
)

// Pad types and shapes used by the generator
const (
	PadSMD      = "smd"
	PadThruHole = "thru_hole"

	ShapeTrapezoid = "trapezoid"
	ShapeRect      = "rect"
	ShapeCircle    = "circle"
)

// LayerSet is the list of layers a pad appears on
type LayerSet []string

// Has reports whether the set names layer. Wildcards like "*.Cu" match
// any layer with the same suffix.
func (ls LayerSet) Has(layer string) bool {
	for _, l := range ls {
		if l == layer {
			return true
		}
		if strings.HasPrefix(l, "*") && strings.HasSuffix(layer, l[1:]) {
			return true
		}
	}
	return false
}

// Footprint is one .kicad_mod file
type Footprint struct {
	Library     string
	Name        string
	Version     int
	Generator   string
	Layer       string
	Description string
	Tags        string
	Attributes  []string
	Position    PositionAngle // always zero for library footprints
	Texts       []Text
	Graphics    []Graphic
	Pads        []Pad
}

// Pad is a copper pad. Vias are thru-hole circle pads.
type Pad struct {
	Number    string
	Type      string
	Shape     string
	Position  PositionAngle
	Size      Size
	RectDelta Size // trapezoid only
	Drill     float64
	Layers    LayerSet
	UUID      UUID
}

// IsThruHole reports whether the pad is drilled
func (p Pad) IsThruHole() bool {
	return p.Type == PadThruHole
}

// Graphic is an fp_line segment
type Graphic struct {
	Layer string
	Start Position
	End   Position
	Width float64
	UUID  UUID
}

// Text is an fp_text item
type Text struct {
	Kind     string // reference, value or user
	Text     string
	Position PositionAngle
	Layer    string
	Effects  Effects
	UUID     UUID
}

// Reference returns the reference designator text
func (fp *Footprint) Reference() string {
	return fp.text("reference")
}

// Value returns the value text, which carries the footprint name
func (fp *Footprint) Value() string {
	return fp.text("value")
}

func (fp *Footprint) text(kind string) string {
	for _, t := range fp.Texts {
		if t.Kind == kind {
			return t.Text
		}
	}
	return ""
}

// GraphicsOn returns the segments drawn on one layer
func (fp *Footprint) GraphicsOn(layer string) []Graphic {
	var out []Graphic
	for _, g := range fp.Graphics {
		if g.Layer == layer {
			out = append(out, g)
		}
	}
	return out
}
