package pcb

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Rotate turns a pad-local offset by angle degrees the way KiCad does:
// positive angles are counter-clockwise on screen (Y down).
func Rotate(p Position, angle Angle) Position {
	if angle == 0 {
		return p
	}
	rad := -float64(angle) * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Position{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Outline returns the pad's copper polygon in footprint coordinates.
// Circles are returned as nil; use Position and Size instead.
func (p Pad) Outline() []Position {
	hw, hh := p.Size.Width/2, p.Size.Height/2
	var local []Position

	switch p.Shape {
	case ShapeTrapezoid:
		// KiCad's trapezoid: half the delta moves opposite corners in and out
		dx, dy := p.RectDelta.Width/2, p.RectDelta.Height/2
		local = []Position{
			{X: -hw - dy, Y: hh + dx},
			{X: hw + dy, Y: hh - dx},
			{X: hw - dy, Y: -hh + dx},
			{X: -hw + dy, Y: -hh - dx},
		}
	case ShapeCircle:
		return nil
	default:
		local = []Position{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	}

	out := make([]Position, len(local))
	for i, c := range local {
		r := Rotate(c, p.Position.Angle)
		out[i] = Position{X: p.Position.X + r.X, Y: p.Position.Y + r.Y}
	}
	return out
}

// GetBoundingBox covers every pad outline, line and text anchor
func (fp *Footprint) GetBoundingBox() BoundingBox {
	bbox := NewBoundingBox()

	for _, pad := range fp.Pads {
		if pts := pad.Outline(); pts != nil {
			for _, pt := range pts {
				bbox.Expand(fp.TransformPosition(pt))
			}
			continue
		}
		c := fp.TransformPosition(pad.Position.Position)
		r := pad.Size.Width / 2
		bbox.Expand(Position{X: c.X - r, Y: c.Y - r})
		bbox.Expand(Position{X: c.X + r, Y: c.Y + r})
	}

	for _, g := range fp.Graphics {
		hw := g.Width / 2
		for _, pt := range []Position{g.Start, g.End} {
			abs := fp.TransformPosition(pt)
			bbox.Expand(Position{X: abs.X - hw, Y: abs.Y - hw})
			bbox.Expand(Position{X: abs.X + hw, Y: abs.Y + hw})
		}
	}

	for _, t := range fp.Texts {
		bbox.Expand(fp.TransformPosition(t.Position.Position))
	}

	if bbox.IsEmpty() {
		bbox.Expand(fp.Position.Position)
	}
	return bbox
}

// TransformPosition maps a footprint-local position to board coordinates
func (fp *Footprint) TransformPosition(rel Position) Position {
	r := Rotate(rel, fp.Position.Angle)
	return Position{X: r.X + fp.Position.X, Y: r.Y + fp.Position.Y}
}

// Electrode groups the pads sharing one sense line
type Electrode struct {
	Name string
	Pads []Pad // SMD pads named Name
	Vias []Pad // thru-hole pads named "v_" + Name
}

// Electrodes groups pads by name. Vias join the electrode they are named after.
// Rows (r*) come before columns (c*), each ordered by index.
func (fp *Footprint) Electrodes() []Electrode {
	byName := make(map[string]*Electrode)
	var order []string
	get := func(name string) *Electrode {
		e, ok := byName[name]
		if !ok {
			e = &Electrode{Name: name}
			byName[name] = e
			order = append(order, name)
		}
		return e
	}

	for _, p := range fp.Pads {
		if name, ok := strings.CutPrefix(p.Number, "v_"); ok && p.IsThruHole() {
			get(name).Vias = append(get(name).Vias, p)
			continue
		}
		get(p.Number).Pads = append(get(p.Number).Pads, p)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return electrodeLess(order[i], order[j])
	})
	out := make([]Electrode, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// electrodeLess orders r0 < r1 < r10 < c0 < ..., then any other name
func electrodeLess(a, b string) bool {
	ra, ia := electrodeRank(a)
	rb, ib := electrodeRank(b)
	if ra != rb {
		return ra < rb
	}
	if ra == 2 {
		return a < b
	}
	return ia < ib
}

func electrodeRank(name string) (rank, index int) {
	if len(name) > 1 {
		if i, err := strconv.Atoi(name[1:]); err == nil {
			switch name[0] {
			case 'r':
				return 0, i
			case 'c':
				return 1, i
			}
		}
	}
	return 2, 0
}
