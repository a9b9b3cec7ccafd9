package renderer

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Theme is a named palette for the preview
type Theme struct {
	Name       string
	Background color.NRGBA
	Pad        color.NRGBA
	Via        color.NRGBA
	Drill      color.NRGBA
	Layers     map[string]color.NRGBA
}

// LayerColor returns the colour of a layer, grey when the theme has none
func (t Theme) LayerColor(layer string) color.NRGBA {
	if c, ok := t.Layers[layer]; ok {
		return c
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}

// KiCad's classic palette
var ThemeClassic = Theme{
	Name:       "classic",
	Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
	Pad:        color.NRGBA{R: 227, G: 183, B: 46, A: 255},
	Via:        color.NRGBA{R: 236, G: 236, B: 236, A: 255},
	Drill:      color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	Layers: map[string]color.NRGBA{
		"F.Cu":    {R: 200, G: 52, B: 52, A: 255},
		"B.Cu":    {R: 77, G: 127, B: 196, A: 255},
		"F.SilkS": {R: 242, G: 237, B: 161, A: 255},
		"F.Mask":  {R: 216, G: 100, B: 255, A: 102},
		"F.Fab":   {R: 175, G: 175, B: 175, A: 255},
	},
}

var ThemeKiCad2020 = Theme{
	Name:       "kicad2020",
	Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
	Pad:        color.NRGBA{R: 200, G: 160, B: 40, A: 255},
	Via:        color.NRGBA{R: 194, G: 194, B: 194, A: 255},
	Drill:      color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	Layers: map[string]color.NRGBA{
		"F.Cu":    {R: 179, G: 31, B: 31, A: 255},
		"B.Cu":    {R: 12, G: 98, B: 179, A: 255},
		"F.SilkS": {R: 242, G: 237, B: 161, A: 255},
		"F.Mask":  {R: 132, G: 0, B: 132, A: 102},
		"F.Fab":   {R: 128, G: 128, B: 128, A: 255},
	},
}

// Nord palette
var ThemeNord = Theme{
	Name:       "nord",
	Background: color.NRGBA{R: 46, G: 52, B: 64, A: 255},
	Pad:        color.NRGBA{R: 235, G: 203, B: 139, A: 255},
	Via:        color.NRGBA{R: 216, G: 222, B: 233, A: 255},
	Drill:      color.NRGBA{R: 46, G: 52, B: 64, A: 255},
	Layers: map[string]color.NRGBA{
		"F.Cu":    {R: 191, G: 97, B: 106, A: 255},
		"B.Cu":    {R: 129, G: 161, B: 193, A: 255},
		"F.SilkS": {R: 236, G: 239, B: 244, A: 255},
		"F.Mask":  {R: 180, G: 142, B: 173, A: 102},
		"F.Fab":   {R: 216, G: 222, B: 233, A: 255},
	},
}

var themes = map[string]Theme{
	ThemeClassic.Name:   ThemeClassic,
	ThemeKiCad2020.Name: ThemeKiCad2020,
	ThemeNord.Name:      ThemeNord,
}

// ThemeNames lists the available themes, sorted
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ThemeByName looks a theme up case-insensitively
func ThemeByName(name string) (Theme, error) {
	if t, ok := themes[strings.ToLower(name)]; ok {
		return t, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
}
