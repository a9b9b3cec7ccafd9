package trackpad

// via places the plated through-hole at the unshifted centre of a column cell
func (g grid) via(c cell) Via {
	net := c.net()
	return Via{
		Name:     "v_" + net.Name(),
		Net:      net,
		Position: g.round.point(c.x, c.y),
		Diameter: g.viaDiameter,
		Drill:    g.viaDrill,
	}
}
