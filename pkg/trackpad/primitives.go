package trackpad

import (
	"fmt"
	"math"
)

// Point is a position in host internal units (nanometres)
type Point struct {
	X int64
	Y int64
}

// Size is a width/height pair in nanometres
type Size struct {
	W int64
	H int64
}

// Angle is an orientation in decidegrees, the host angular unit
type Angle int

// Degrees returns the angle in degrees
func (a Angle) Degrees() float64 {
	return float64(a) / 10.0
}

// degrees converts whole degrees to a normalized Angle in [0, 3600)
func degrees(d int) Angle {
	d %= 360
	if d < 0 {
		d += 360
	}
	return Angle(d * 10)
}

// Rounding selects how fractional nanometre coordinates become integers
type Rounding string

const (
	// RoundTruncate truncates toward zero. Matches legacy layouts bit for bit.
	RoundTruncate Rounding = "truncate"
	// RoundNearest rounds half away from zero.
	RoundNearest Rounding = "nearest"
)

// apply converts v to an integer according to the policy
func (r Rounding) apply(v float64) int64 {
	if r == RoundNearest {
		return int64(math.Round(v))
	}
	return int64(v)
}

// point rounds both coordinates
func (r Rounding) point(x, y float64) Point {
	return Point{X: r.apply(x), Y: r.apply(y)}
}

// Edge identifies one border of the sensor
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Edges lists the borders in generation order
var Edges = []Edge{EdgeTop, EdgeRight, EdgeBottom, EdgeLeft}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// ElectrodeKind tells which axis an electrode senses
type ElectrodeKind int

const (
	NoElectrode ElectrodeKind = iota
	Row
	Column
)

// Electrode is the logical net a primitive belongs to. The zero value means no net.
type Electrode struct {
	Kind  ElectrodeKind
	Index int
}

// RowElectrode returns the row net with index i
func RowElectrode(i int) Electrode {
	return Electrode{Kind: Row, Index: i}
}

// ColumnElectrode returns the column net with index i
func ColumnElectrode(i int) Electrode {
	return Electrode{Kind: Column, Index: i}
}

// Name returns the pad name used by the host for this net ("r2", "c0")
func (e Electrode) Name() string {
	switch e.Kind {
	case Row:
		return fmt.Sprintf("r%d", e.Index)
	case Column:
		return fmt.Sprintf("c%d", e.Index)
	}
	return ""
}

// IsNone reports whether the primitive carries no net
func (e Electrode) IsNone() bool {
	return e.Kind == NoElectrode
}

// Layer is a host layer name
type Layer string

const (
	FrontCopper Layer = "F.Cu"
	BackCopper  Layer = "B.Cu"
	FrontSilk   Layer = "F.SilkS"
	FrontFab    Layer = "F.Fab"
)

// Kind discriminates footprint primitives
type Kind int

const (
	KindPad Kind = iota
	KindVia
	KindTrace
)

// Primitive is one emitted footprint element
type Primitive interface {
	Kind() Kind
}

// Pad is a tapered trapezoid SMD pad on front copper.
// A Delta of (Size.H, 0) collapses one side to give the triangular silhouette.
type Pad struct {
	Name        string
	Net         Electrode
	Edge        Edge
	Position    Point
	Size        Size
	Delta       Size
	Orientation Angle
}

// Kind implements Primitive
func (Pad) Kind() Kind { return KindPad }

// Via is a circular plated through-hole joining front and back copper
type Via struct {
	Name     string
	Net      Electrode
	Position Point
	Diameter int64
	Drill    int64
}

// Kind implements Primitive
func (Via) Kind() Kind { return KindVia }

// Trace is a straight single-segment conductor (or silkscreen line)
type Trace struct {
	Start Point
	End   Point
	Layer Layer
	Width int64
	Net   Electrode
}

// Kind implements Primitive
func (Trace) Kind() Kind { return KindTrace }

// Length returns the Euclidean segment length in nanometres
func (t Trace) Length() float64 {
	dx := float64(t.End.X - t.Start.X)
	dy := float64(t.End.Y - t.Start.Y)
	return math.Hypot(dx, dy)
}

// Label is a text anchor for the reference or value string
type Label struct {
	Position  Point
	Size      int64
	Thickness int64
}
