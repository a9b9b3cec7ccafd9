// Package sexp holds the value types and tree helpers shared by the KiCad
// footprint reader and writer. Coordinates are millimetres and angles are
// degrees, as they appear in KiCad 6+ files.
package sexp

// Unit conversions between host internal units and file units
const (
	NanometersToMM       = 1e-6
	MMToNanometers       = 1e6
	DecidegreesToDegrees = 0.1
)

// Position is a 2D coordinate in millimetres, Y pointing down
type Position struct {
	X float64
	Y float64
}

// Angle is a rotation in degrees, counter-clockwise on screen
type Angle float64

// PositionAngle is the payload of an (at X Y [angle]) node
type PositionAngle struct {
	Position
	Angle Angle
}

// Size is a width/height pair in millimetres
type Size struct {
	Width  float64
	Height float64
}

// BoundingBox is an axis aligned rectangle
type BoundingBox struct {
	Min Position
	Max Position
}

// NewBoundingBox returns an empty box that any Expand call will replace
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: 1e9, Y: 1e9},
		Max: Position{X: -1e9, Y: -1e9},
	}
}

// IsEmpty reports whether nothing has been added to the box
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Contains reports whether pos lies inside or on the box
func (bb BoundingBox) Contains(pos Position) bool {
	return pos.X >= bb.Min.X && pos.X <= bb.Max.X &&
		pos.Y >= bb.Min.Y && pos.Y <= bb.Max.Y
}

// Expand grows the box to include pos
func (bb *BoundingBox) Expand(pos Position) {
	if pos.X < bb.Min.X {
		bb.Min.X = pos.X
	}
	if pos.Y < bb.Min.Y {
		bb.Min.Y = pos.Y
	}
	if pos.X > bb.Max.X {
		bb.Max.X = pos.X
	}
	if pos.Y > bb.Max.Y {
		bb.Max.Y = pos.Y
	}
}

// ExpandBox grows the box to include other
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Inflate grows the box by d on every side
func (bb BoundingBox) Inflate(d float64) BoundingBox {
	if bb.IsEmpty() {
		return bb
	}
	return BoundingBox{
		Min: Position{X: bb.Min.X - d, Y: bb.Min.Y - d},
		Max: Position{X: bb.Max.X + d, Y: bb.Max.Y + d},
	}
}

func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the middle of the box
func (bb BoundingBox) Center() Position {
	return Position{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}

// UUID identifies a KiCad object (v6+ files)
type UUID string

// Font is the size and stroke of a text item
type Font struct {
	Size      Size
	Thickness float64
}

// Effects are the display attributes of a text item
type Effects struct {
	Font Font
	Hide bool
}
