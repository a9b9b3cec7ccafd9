// Package trackpad lays out a capacitive trackpad sensor as footprint primitives.
//
// The sensor is a grid of EdgeSegmentsX by EdgeSegmentsY cells. Each border of the
// grid carries a ring of tapered pads: top and bottom pads form the column
// electrodes ("c0", "c1", ...), left and right pads form the row electrodes
// ("r0", "r1", ...). Pads on opposite borders share a name and an Electrode, so
// the host ties them into one net. Vias sit under the top and bottom pads,
// back-copper connectors join top pads to their vias, and a front-copper bus
// runs across the sensor for every row.
//
// Generation is a pure function of Config: Build returns a new Footprint, and
// Generate drives any PrimitiveSink (see pkg/kicad/pcb for the KiCad host).
//
//	fp, err := trackpad.Build(trackpad.DefaultConfig())
//	if err != nil {
//	    // *trackpad.ConfigError
//	}
//	for _, pad := range fp.PadsOn(trackpad.EdgeTop) {
//	    fmt.Println(pad.Name, pad.Position)
//	}
package trackpad
