package pcb

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/trackpad"
)

// Layers a generated pad or via occupies
var (
	SMDLayers = LayerSet{"F.Cu", "F.Mask"}
	PTHLayers = LayerSet{"*.Cu", "*.Mask"}
)

// FootprintBuilder collects generated primitives into a KiCad footprint.
// It implements trackpad.PrimitiveSink.
type FootprintBuilder struct {
	fp *Footprint
	ns uuid.UUID
	n  int
}

// NewFootprintBuilder starts an empty SMD footprint called name
func NewFootprintBuilder(name string) *FootprintBuilder {
	return &FootprintBuilder{
		fp: &Footprint{
			Name:        name,
			Version:     FormatVersion,
			Generator:   GeneratorName,
			Layer:       "F.Cu",
			Description: "Capacitive trackpad " + name,
			Tags:        "trackpad touchpad capacitive",
			Attributes:  []string{"smd"},
		},
		ns: uuid.NewSHA1(uuid.NameSpaceURL, []byte("otp:"+name)),
	}
}

// nextUUID derives item UUIDs from the footprint name and insertion order,
// so identical inputs give identical files
func (b *FootprintBuilder) nextUUID() UUID {
	b.n++
	return UUID(uuid.NewSHA1(b.ns, []byte(fmt.Sprint(b.n))).String())
}

func mm(nm int64) float64 {
	return float64(nm) * sexp.NanometersToMM
}

func position(p trackpad.Point) Position {
	return Position{X: mm(p.X), Y: mm(p.Y)}
}

// AddPad implements trackpad.PrimitiveSink
func (b *FootprintBuilder) AddPad(p trackpad.Pad) {
	pad := Pad{
		Number:   p.Name,
		Type:     PadSMD,
		Shape:    ShapeTrapezoid,
		Position: PositionAngle{Position: position(p.Position), Angle: Angle(p.Orientation.Degrees())},
		Size:     Size{Width: mm(p.Size.W), Height: mm(p.Size.H)},
		Layers:   SMDLayers,
		UUID:     b.nextUUID(),
	}
	if p.Delta == (trackpad.Size{}) {
		pad.Shape = ShapeRect
	} else {
		pad.RectDelta = Size{Width: mm(p.Delta.W), Height: mm(p.Delta.H)}
	}
	b.fp.Pads = append(b.fp.Pads, pad)
}

// AddVia implements trackpad.PrimitiveSink
func (b *FootprintBuilder) AddVia(v trackpad.Via) {
	d := mm(v.Diameter)
	b.fp.Pads = append(b.fp.Pads, Pad{
		Number:   v.Name,
		Type:     PadThruHole,
		Shape:    ShapeCircle,
		Position: PositionAngle{Position: position(v.Position)},
		Size:     Size{Width: d, Height: d},
		Drill:    mm(v.Drill),
		Layers:   PTHLayers,
		UUID:     b.nextUUID(),
	})
}

// AddTrace implements trackpad.PrimitiveSink
func (b *FootprintBuilder) AddTrace(t trackpad.Trace) {
	b.fp.Graphics = append(b.fp.Graphics, Graphic{
		Layer: string(t.Layer),
		Start: position(t.Start),
		End:   position(t.End),
		Width: mm(t.Width),
		UUID:  b.nextUUID(),
	})
}

// SetLabels implements trackpad.PrimitiveSink. The value text carries the
// footprint name.
func (b *FootprintBuilder) SetLabels(reference, value trackpad.Label) {
	text := func(kind, s, layer string, l trackpad.Label) Text {
		size := mm(l.Size)
		return Text{
			Kind:     kind,
			Text:     s,
			Position: PositionAngle{Position: position(l.Position)},
			Layer:    layer,
			Effects:  Effects{Font: Font{Size: Size{Width: size, Height: size}, Thickness: mm(l.Thickness)}},
			UUID:     b.nextUUID(),
		}
	}
	b.fp.Texts = []Text{
		text("reference", "REF**", string(trackpad.FrontSilk), reference),
		text("value", b.fp.Name, string(trackpad.FrontFab), value),
	}
}

// Footprint returns the footprint built so far
func (b *FootprintBuilder) Footprint() *Footprint {
	return b.fp
}

// Build generates cfg straight into a KiCad footprint
func Build(cfg trackpad.Config, opts ...trackpad.Option) (*Footprint, error) {
	b := NewFootprintBuilder(cfg.DisplayName())
	if err := trackpad.Generate(cfg, b, opts...); err != nil {
		return nil, err
	}
	return b.Footprint(), nil
}
