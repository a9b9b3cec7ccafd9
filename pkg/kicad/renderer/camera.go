package renderer

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp"
)

// Zoom limits in pixels per millimetre
const (
	MinZoom = 0.1
	MaxZoom = 1000.0
)

// Camera maps footprint coordinates (mm, Y down) to screen pixels
type Camera struct {
	// Center position in world coordinates (mm)
	CenterX float64
	CenterY float64

	// Zoom is pixels per mm
	Zoom float64

	ScreenWidth  int
	ScreenHeight int

	FlipView bool    // mirror around the vertical axis, to look at the back side
	Rotation float64 // view rotation in degrees

	// View rotation and flip pivot (mm)
	RotationCenterX float64
	RotationCenterY float64
}

// NewCamera returns a camera at the origin with 10 px/mm
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts a position in mm to pixels
func (c *Camera) WorldToScreen(pos sexp.Position) (float64, float64) {
	pos = c.applyViewTransform(pos)
	x := (pos.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (pos.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0
	return x, y
}

// ScreenToWorld converts pixels back to mm
func (c *Camera) ScreenToWorld(screenX, screenY float64) sexp.Position {
	x := (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX
	y := (screenY-float64(c.ScreenHeight)/2.0)/c.Zoom + c.CenterY
	return c.applyInverseViewTransform(sexp.Position{X: x, Y: y})
}

// Pan moves the view by a screen offset in pixels
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt scales the view by factor, keeping the world point under the
// given screen position fixed
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)
	c.Zoom = math.Max(MinZoom, math.Min(MaxZoom, c.Zoom*factor))
	after := c.ScreenToWorld(screenX, screenY)

	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit centres bbox and zooms so it fills 90% of the smaller screen dimension
func (c *Camera) Fit(bbox sexp.BoundingBox) {
	width, height := bbox.Width(), bbox.Height()
	if bbox.IsEmpty() || width <= 0 || height <= 0 {
		return
	}

	center := bbox.Center()
	c.CenterX, c.CenterY = center.X, center.Y
	c.RotationCenterX, c.RotationCenterY = center.X, center.Y

	zoomX := float64(c.ScreenWidth) * 0.9 / width
	zoomY := float64(c.ScreenHeight) * 0.9 / height
	c.Zoom = math.Min(zoomX, zoomY)
}

// UpdateScreenSize follows a window resize
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// Flip toggles the mirrored view
func (c *Camera) Flip() {
	c.FlipView = !c.FlipView
}

// Rotate turns the view by degrees, normalized into [0, 360)
func (c *Camera) Rotate(degrees float64) {
	c.Rotation = math.Mod(c.Rotation+degrees, 360)
	if c.Rotation < 0 {
		c.Rotation += 360
	}
}

func (c *Camera) applyViewTransform(pos sexp.Position) sexp.Position {
	x, y := pos.X-c.RotationCenterX, pos.Y-c.RotationCenterY

	if c.Rotation != 0 {
		rad := c.Rotation * math.Pi / 180.0
		cos, sin := math.Cos(rad), math.Sin(rad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	if c.FlipView {
		x = -x
	}

	return sexp.Position{X: x + c.RotationCenterX, Y: y + c.RotationCenterY}
}

func (c *Camera) applyInverseViewTransform(pos sexp.Position) sexp.Position {
	x, y := pos.X-c.RotationCenterX, pos.Y-c.RotationCenterY

	if c.FlipView {
		x = -x
	}
	if c.Rotation != 0 {
		rad := -c.Rotation * math.Pi / 180.0
		cos, sin := math.Cos(rad), math.Sin(rad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	return sexp.Position{X: x + c.RotationCenterX, Y: y + c.RotationCenterY}
}
