package renderer

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/vector"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/pcb"
)

// circleKappa places cubic control points for a quarter circle
const circleKappa = 0.5522847498

// Options control a raster preview
type Options struct {
	Width  int
	Height int
	Theme  Theme
	Layers *LayerConfig // nil shows every layer
}

// DefaultOptions renders 1024x512 with the classic theme
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 512, Theme: ThemeClassic}
}

// Rasterize draws fp into a new image, fitted to the canvas
func Rasterize(fp *pcb.Footprint, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Theme.Background), image.Point{}, draw.Src)

	cam := NewCamera(opts.Width, opts.Height)
	cam.Fit(fp.GetBoundingBox())

	r := vector.NewRasterizer(opts.Width, opts.Height)
	for _, s := range Scene(fp, opts.Theme, opts.Layers) {
		r.Reset(opts.Width, opts.Height)
		addShape(r, cam, s)
		r.Draw(img, img.Bounds(), image.NewUniform(s.Color), image.Point{})
	}
	return img, nil
}

func addShape(r *vector.Rasterizer, cam *Camera, s Shape) {
	switch s.Kind {
	case ShapePolygon:
		for i, p := range s.Points {
			x, y := cam.WorldToScreen(p)
			if i == 0 {
				r.MoveTo(float32(x), float32(y))
			} else {
				r.LineTo(float32(x), float32(y))
			}
		}
		r.ClosePath()

	case ShapeCircle:
		x, y := cam.WorldToScreen(s.Center)
		addCircle(r, x, y, math.Max(s.Radius*cam.Zoom, 0.5))

	case ShapeSegment:
		x1, y1 := cam.WorldToScreen(s.Points[0])
		x2, y2 := cam.WorldToScreen(s.Points[1])
		addSegment(r, x1, y1, x2, y2, math.Max(s.Width*cam.Zoom, 1))
	}
}

// addCircle appends a circle as four cubic arcs
func addCircle(r *vector.Rasterizer, cx, cy, radius float64) {
	k := radius * circleKappa
	pt := func(x, y float64) (float32, float32) { return float32(cx + x), float32(cy + y) }

	// Same winding as addSegment's body so overlapping caps add up
	r.MoveTo(pt(radius, 0))
	cubeTo(r, pt, radius, -k, k, -radius, 0, -radius)
	cubeTo(r, pt, -k, -radius, -radius, -k, -radius, 0)
	cubeTo(r, pt, -radius, k, -k, radius, 0, radius)
	cubeTo(r, pt, k, radius, radius, k, radius, 0)
	r.ClosePath()
}

func cubeTo(r *vector.Rasterizer, pt func(x, y float64) (float32, float32), x1, y1, x2, y2, x3, y3 float64) {
	ax, ay := pt(x1, y1)
	bx, by := pt(x2, y2)
	cx, cy := pt(x3, y3)
	r.CubeTo(ax, ay, bx, by, cx, cy)
}

// addSegment appends a stroked line with round caps
func addSegment(r *vector.Rasterizer, x1, y1, x2, y2, width float64) {
	hw := width / 2
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length > 0 {
		nx, ny := -dy/length*hw, dx/length*hw
		r.MoveTo(float32(x1+nx), float32(y1+ny))
		r.LineTo(float32(x2+nx), float32(y2+ny))
		r.LineTo(float32(x2-nx), float32(y2-ny))
		r.LineTo(float32(x1-nx), float32(y1-ny))
		r.ClosePath()
	}
	addCircle(r, x1, y1, hw)
	addCircle(r, x2, y2, hw)
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// RenderPNG rasterizes fp and writes it as PNG
func RenderPNG(w io.Writer, fp *pcb.Footprint, opts Options) error {
	img, err := Rasterize(fp, opts)
	if err != nil {
		return err
	}
	return WritePNG(w, img)
}

// ParseSize parses an image size written "WIDTHxHEIGHT" in pixels. Each
// dimension must be in 1..limit.
func ParseSize(s string, limit int) (int, int, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	width, err1 := strconv.Atoi(ws)
	height, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	if width <= 0 || height <= 0 || width > limit || height > limit {
		return 0, 0, fmt.Errorf("size %q out of range (1..%d)", s, limit)
	}
	return width, height, nil
}
