package trackpad

import "fmt"

// grid holds the layout arithmetic in nanometres, derived once per generation call
type grid struct {
	width, height  float64
	segX, segY     int
	pitchX, pitchY float64 // pad pitch: four pads share one grid cell
	clearance      float64
	halfClearance  float64
	viaDiameter    int64
	viaDrill       int64
	lineWidth      int64
	silkWidth      int64
	textSize       float64
	round          Rounding
}

func newGrid(c Config) grid {
	t := c.Trackpad
	width := float64(t.Width.Nanometers())
	height := float64(t.Height.Nanometers())
	clearance := float64(t.Clearance.Nanometers())

	g := grid{
		width:         width,
		height:        height,
		segX:          t.EdgeSegmentsX,
		segY:          t.EdgeSegmentsY,
		clearance:     clearance,
		halfClearance: clearance / 2,
		viaDiameter:   t.ViaDiameter.Nanometers(),
		viaDrill:      t.ViaDrill.Nanometers(),
		lineWidth:     t.LineWidth.Nanometers(),
		silkWidth:     c.Text.Thickness.Nanometers(),
		textSize:      float64(c.Text.Size.Nanometers()),
		round:         c.Rounding,
	}
	if g.segX > 0 {
		g.pitchX = width / float64(g.segX*2)
	}
	if g.segY > 0 {
		g.pitchY = height / float64(g.segY*2)
	}
	return g
}

// cell is one pad position on an edge. X/Y is the unshifted cell centre.
type cell struct {
	edge  Edge
	index int // column for top/bottom, row for left/right
	depth int // distance from the border in grid cells
	x, y  float64
}

// cell locates pad index i at depth j on an edge
func (g grid) cell(edge Edge, i, j int) cell {
	c := cell{edge: edge, index: i, depth: j}
	switch edge {
	case EdgeTop:
		c.x = g.columnX(i)
		c.y = -g.height/2 + g.pitchY/2 + float64(j)*(g.pitchY*2)
	case EdgeRight:
		c.x = g.width/2 - g.pitchX/2 - float64(j)*(g.pitchX*2)
		c.y = g.rowY(i)
	case EdgeBottom:
		c.x = g.columnX(i)
		c.y = g.height/2 - g.pitchY/2 - float64(j)*(g.pitchY*2)
	case EdgeLeft:
		c.x = -g.width/2 + g.pitchX/2 + float64(j)*(g.pitchX*2)
		c.y = g.rowY(i)
	}
	return c
}

// columnX is the centre line of column i
func (g grid) columnX(i int) float64 {
	return -g.width/2 + float64(i)*(g.pitchX*2) + g.pitchX
}

// rowY is the centre line of row i
func (g grid) rowY(i int) float64 {
	return -g.height/2 + float64(i)*(g.pitchY*2) + g.pitchY
}

// net returns the electrode an edge's cells belong to
func (c cell) net() Electrode {
	if c.edge == EdgeTop || c.edge == EdgeBottom {
		return ColumnElectrode(c.index)
	}
	return RowElectrode(c.index)
}

// edgeAngle gives each edge's orientation relative to the top edge.
// With the default base of 135° this yields 135/90/45/0.
var edgeAngle = map[Edge]int{
	EdgeTop:    0,
	EdgeRight:  -45,
	EdgeBottom: -90,
	EdgeLeft:   -135,
}

// pad computes the tapered pad for a cell. The clearance shift moves the pad
// from the cell centre toward the border its edge belongs to.
func (g grid) pad(c cell, taper bool, baseAngle int) Pad {
	x, y := c.x, c.y
	var w, h float64

	switch c.edge {
	case EdgeTop:
		y -= g.halfClearance
		w, h = g.pitchY-g.clearance, g.pitchX-g.clearance
	case EdgeRight:
		x += g.halfClearance
		w, h = g.pitchX-g.clearance, g.pitchY-g.clearance
	case EdgeBottom:
		y += g.halfClearance
		w, h = g.pitchY-g.clearance, g.pitchX-g.clearance
	case EdgeLeft:
		x -= g.halfClearance
		w, h = g.pitchX-g.clearance, g.pitchY-g.clearance
	}

	size := Size{W: g.round.apply(w), H: g.round.apply(h)}
	if size.W <= 0 || size.H <= 0 {
		panic(fmt.Sprintf("trackpad: non-positive pad size %dx%d on %s edge; config was not validated", size.W, size.H, c.edge))
	}

	net := c.net()
	p := Pad{
		Name:        net.Name(),
		Net:         net,
		Edge:        c.edge,
		Position:    g.round.point(x, y),
		Size:        size,
		Orientation: degrees(baseAngle + edgeAngle[c.edge]),
	}
	if taper {
		p.Delta = Size{W: size.H}
	}
	return p
}
