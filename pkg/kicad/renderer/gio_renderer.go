package renderer

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/pcb"
)

// Text size limits in screen units; smaller labels are skipped
const (
	minTextSize = 8.0
	maxTextSize = 50.0
)

// GioRenderer draws footprints into Gio frames. The text shaper is built once.
type GioRenderer struct {
	Theme  Theme
	Layers *LayerConfig
	shaper *text.Shaper
}

// NewGioRenderer returns a renderer with every layer visible
func NewGioRenderer(theme Theme) *GioRenderer {
	return &GioRenderer{
		Theme:  theme,
		Layers: NewLayerConfig(),
		shaper: text.NewShaper(text.WithCollection(gofont.Collection())),
	}
}

// RenderFootprint paints the background, every visible shape, then the
// reference and value labels
func (r *GioRenderer) RenderFootprint(gtx layout.Context, camera *Camera, fp *pcb.Footprint) {
	paint.Fill(gtx.Ops, r.Theme.Background)

	for _, s := range Scene(fp, r.Theme, r.Layers) {
		switch s.Kind {
		case ShapePolygon:
			renderPolygon(gtx, camera, s)
		case ShapeCircle:
			x, y := camera.WorldToScreen(s.Center)
			renderCircle(gtx, x, y, math.Max(s.Radius*camera.Zoom, 1), s.Color)
		case ShapeSegment:
			x1, y1 := camera.WorldToScreen(s.Points[0])
			x2, y2 := camera.WorldToScreen(s.Points[1])
			renderLine(gtx, x1, y1, x2, y2, math.Max(s.Width*camera.Zoom, 1), s.Color)
		}
	}

	for _, t := range fp.Texts {
		if !r.Layers.IsVisible(t.Layer) {
			continue
		}
		r.renderText(gtx, camera, fp, t)
	}
}

func renderPolygon(gtx layout.Context, camera *Camera, s Shape) {
	var path clip.Path
	path.Begin(gtx.Ops)
	for i, p := range s.Points {
		x, y := camera.WorldToScreen(p)
		if i == 0 {
			path.MoveTo(f32.Pt(float32(x), float32(y)))
		} else {
			path.LineTo(f32.Pt(float32(x), float32(y)))
		}
	}
	path.Close()

	paint.FillShape(gtx.Ops, s.Color, clip.Outline{Path: path.End()}.Op())
}

func renderCircle(gtx layout.Context, x, y, radius float64, fillColor color.NRGBA) {
	rect := image.Rectangle{
		Min: image.Pt(int(x-radius), int(y-radius)),
		Max: image.Pt(int(math.Ceil(x+radius)), int(math.Ceil(y+radius))),
	}
	paint.FillShape(gtx.Ops, fillColor, clip.Ellipse(rect).Op(gtx.Ops))
}

func renderLine(gtx layout.Context, x1, y1, x2, y2, width float64, lineColor color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x1), float32(y1)))
	path.LineTo(f32.Pt(float32(x2), float32(y2)))

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op()
	paint.FillShape(gtx.Ops, lineColor, stroke)
}

// renderText draws a label centred on its anchor
func (r *GioRenderer) renderText(gtx layout.Context, camera *Camera, fp *pcb.Footprint, t pcb.Text) {
	size := t.Effects.Font.Size.Height * camera.Zoom
	if size < minTextSize {
		return
	}
	size = math.Min(size, maxTextSize)

	x, y := camera.WorldToScreen(fp.TransformPosition(t.Position.Position))

	m := op.Record(gtx.Ops)
	paint.ColorOp{Color: r.Theme.LayerColor(t.Layer)}.Add(gtx.Ops)
	material := m.Stop()

	lgtx := gtx
	lgtx.Constraints.Min = image.Point{}

	macro := op.Record(gtx.Ops)
	label := widget.Label{Alignment: text.Start, MaxLines: 1}
	dims := label.Layout(lgtx, r.shaper, font.Font{}, unit.Sp(size), t.Text, material)
	call := macro.Stop()

	angle := -float32(t.Position.Angle) * math.Pi / 180.0
	transform := f32.Affine2D{}.
		Offset(f32.Pt(-float32(dims.Size.X)/2, -float32(dims.Size.Y)/2)).
		Rotate(f32.Pt(0, 0), angle).
		Offset(f32.Pt(float32(x), float32(y)))

	stack := op.Affine(transform).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}
