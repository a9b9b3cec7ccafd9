package trackpad

// backConnector joins a top-edge pad to its via on the back copper layer.
// It runs from just past the pad's far edge straight to the via centre.
func (g grid) backConnector(c cell) Trace {
	return Trace{
		Start: g.round.point(c.x, c.y+g.pitchY+g.clearance),
		End:   g.round.point(c.x, c.y),
		Layer: BackCopper,
		Width: g.lineWidth,
		Net:   c.net(),
	}
}

// frontBus spans the full sensor width along row i on the front copper layer
func (g grid) frontBus(row int) Trace {
	y := g.rowY(row)
	return Trace{
		Start: g.round.point(-g.width/2, y),
		End:   g.round.point(g.width/2, y),
		Layer: FrontCopper,
		Width: g.lineWidth,
		Net:   RowElectrode(row),
	}
}

// outline draws the sensor border on the silkscreen, clockwise from top left
func (g grid) outline() []Trace {
	hw, hh := g.width/2, g.height/2
	corners := []Point{
		g.round.point(-hw, -hh),
		g.round.point(hw, -hh),
		g.round.point(hw, hh),
		g.round.point(-hw, hh),
	}

	traces := make([]Trace, 0, len(corners))
	for i, start := range corners {
		traces = append(traces, Trace{
			Start: start,
			End:   corners[(i+1)%len(corners)],
			Layer: FrontSilk,
			Width: g.silkWidth,
		})
	}
	return traces
}
