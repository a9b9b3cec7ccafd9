package trackpad

import "sort"

// PrimitiveSink receives primitives in generation order.
// Each host implements it once; the layout code depends on nothing else.
type PrimitiveSink interface {
	AddPad(Pad)
	AddVia(Via)
	AddTrace(Trace)
	SetLabels(reference, value Label)
}

// Footprint is the host-neutral result of one generation call.
// Items is append-only and keeps insertion order.
type Footprint struct {
	Name      string
	Items     []Primitive
	Reference Label
	Value     Label
}

// AddPad implements PrimitiveSink
func (fp *Footprint) AddPad(p Pad) {
	fp.Items = append(fp.Items, p)
}

// AddVia implements PrimitiveSink
func (fp *Footprint) AddVia(v Via) {
	fp.Items = append(fp.Items, v)
}

// AddTrace implements PrimitiveSink
func (fp *Footprint) AddTrace(t Trace) {
	fp.Items = append(fp.Items, t)
}

// SetLabels implements PrimitiveSink
func (fp *Footprint) SetLabels(reference, value Label) {
	fp.Reference = reference
	fp.Value = value
}

// Pads returns all pads in insertion order
func (fp *Footprint) Pads() []Pad {
	var pads []Pad
	for _, it := range fp.Items {
		if p, ok := it.(Pad); ok {
			pads = append(pads, p)
		}
	}
	return pads
}

// PadsOn returns the pads generated for one edge
func (fp *Footprint) PadsOn(edge Edge) []Pad {
	var pads []Pad
	for _, p := range fp.Pads() {
		if p.Edge == edge {
			pads = append(pads, p)
		}
	}
	return pads
}

// Vias returns all vias in insertion order
func (fp *Footprint) Vias() []Via {
	var vias []Via
	for _, it := range fp.Items {
		if v, ok := it.(Via); ok {
			vias = append(vias, v)
		}
	}
	return vias
}

// Traces returns all line segments in insertion order
func (fp *Footprint) Traces() []Trace {
	var traces []Trace
	for _, it := range fp.Items {
		if t, ok := it.(Trace); ok {
			traces = append(traces, t)
		}
	}
	return traces
}

// TracesOn returns the segments drawn on one layer
func (fp *Footprint) TracesOn(layer Layer) []Trace {
	var traces []Trace
	for _, t := range fp.Traces() {
		if t.Layer == layer {
			traces = append(traces, t)
		}
	}
	return traces
}

// ElectrodeInfo collects everything attached to one electrode
type ElectrodeInfo struct {
	Electrode Electrode
	Pads      []Pad
	Vias      []Via
	Traces    []Trace
}

// Electrodes groups primitives by net, rows first then columns, by index.
// Primitives without a net are skipped.
func (fp *Footprint) Electrodes() []ElectrodeInfo {
	byNet := make(map[Electrode]*ElectrodeInfo)
	get := func(e Electrode) *ElectrodeInfo {
		info, ok := byNet[e]
		if !ok {
			info = &ElectrodeInfo{Electrode: e}
			byNet[e] = info
		}
		return info
	}

	for _, it := range fp.Items {
		switch p := it.(type) {
		case Pad:
			if !p.Net.IsNone() {
				get(p.Net).Pads = append(get(p.Net).Pads, p)
			}
		case Via:
			if !p.Net.IsNone() {
				get(p.Net).Vias = append(get(p.Net).Vias, p)
			}
		case Trace:
			if !p.Net.IsNone() {
				get(p.Net).Traces = append(get(p.Net).Traces, p)
			}
		}
	}

	infos := make([]ElectrodeInfo, 0, len(byNet))
	for _, info := range byNet {
		infos = append(infos, *info)
	}
	sort.Slice(infos, func(i, j int) bool {
		a, b := infos[i].Electrode, infos[j].Electrode
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Index < b.Index
	})
	return infos
}
