package renderer

// LayerConfig controls which layers are drawn. Layers are visible unless hidden.
type LayerConfig struct {
	hidden map[string]bool
	only   map[string]bool
}

// NewLayerConfig returns a configuration with every layer visible
func NewLayerConfig() *LayerConfig {
	return &LayerConfig{hidden: make(map[string]bool)}
}

// SetVisible shows or hides one layer
func (lc *LayerConfig) SetVisible(layer string, visible bool) {
	if lc.only != nil {
		lc.only[layer] = visible
		return
	}
	lc.hidden[layer] = !visible
}

// IsVisible reports whether layer is drawn. A nil config shows everything.
func (lc *LayerConfig) IsVisible(layer string) bool {
	if lc == nil {
		return true
	}
	if lc.only != nil {
		return lc.only[layer]
	}
	return !lc.hidden[layer]
}

// ShowAll makes every layer visible again
func (lc *LayerConfig) ShowAll() {
	lc.hidden = make(map[string]bool)
	lc.only = nil
}

// ShowOnly hides every layer except the given ones
func (lc *LayerConfig) ShowOnly(layers ...string) {
	lc.only = make(map[string]bool, len(layers))
	for _, layer := range layers {
		lc.only[layer] = true
	}
}

// ShowCopperOnly hides silkscreen and fabrication layers
func (lc *LayerConfig) ShowCopperOnly() {
	lc.ShowOnly("F.Cu", "B.Cu")
}

// Toggle flips a layer's visibility
func (lc *LayerConfig) Toggle(layer string) {
	lc.SetVisible(layer, !lc.IsVisible(layer))
}
