package trackpad

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/units"
)

// ParamKind is the host value type of a parameter
type ParamKind string

const (
	KindLength  ParamKind = "length"
	KindInteger ParamKind = "integer"
	KindBool    ParamKind = "bool"
	KindString  ParamKind = "string"
)

// Param describes one host-visible parameter
type Param struct {
	Group string    `json:"group"`
	Name  string    `json:"name"` // host display name, e.g. "edge segments x"
	Key   string    `json:"key"`  // flag and query key, e.g. "edge-segments-x"
	Kind  ParamKind `json:"kind"`
	Min   *float64  `json:"min,omitempty"`
	Max   *float64  `json:"max,omitempty"`
	Usage string    `json:"usage"`

	field func(*Config) any
}

// Field returns a pointer to the parameter's storage in cfg:
// *units.Length, *int, *bool or *Rounding depending on Kind
func (p Param) Field(cfg *Config) any {
	return p.field(cfg)
}

func bound(v float64) *float64 {
	return &v
}

var params = []Param{
	{Group: "Trackpad", Name: "width", Key: "width", Kind: KindLength, Max: bound(MaxLength.MM()),
		Usage: "sensor width",
		field: func(c *Config) any { return &c.Trackpad.Width }},
	{Group: "Trackpad", Name: "height", Key: "height", Kind: KindLength, Max: bound(MaxLength.MM()),
		Usage: "sensor height",
		field: func(c *Config) any { return &c.Trackpad.Height }},
	{Group: "Trackpad", Name: "edge segments x", Key: "edge-segments-x", Kind: KindInteger, Min: bound(MinEdgeSegments), Max: bound(MaxEdgeSegments),
		Usage: "column electrodes along x",
		field: func(c *Config) any { return &c.Trackpad.EdgeSegmentsX }},
	{Group: "Trackpad", Name: "edge segments y", Key: "edge-segments-y", Kind: KindInteger, Min: bound(MinEdgeSegments), Max: bound(MaxEdgeSegments),
		Usage: "row electrodes along y",
		field: func(c *Config) any { return &c.Trackpad.EdgeSegmentsY }},
	{Group: "Trackpad", Name: "via diameter", Key: "via-diameter", Kind: KindLength, Min: bound(MinViaDiameter.MM()), Max: bound(MaxLength.MM()),
		Usage: "via outer diameter",
		field: func(c *Config) any { return &c.Trackpad.ViaDiameter }},
	{Group: "Trackpad", Name: "via drill", Key: "via-drill", Kind: KindLength, Min: bound(MinViaDrill.MM()), Max: bound(MaxLength.MM()),
		Usage: "via drill diameter",
		field: func(c *Config) any { return &c.Trackpad.ViaDrill }},
	{Group: "Trackpad", Name: "clearance", Key: "clearance", Kind: KindLength, Max: bound(MaxLength.MM()),
		Usage: "gap subtracted from every pad",
		field: func(c *Config) any { return &c.Trackpad.Clearance }},
	{Group: "Trackpad", Name: "line width", Key: "line-width", Kind: KindLength, Min: bound(MinLineWidth.MM()), Max: bound(MaxLength.MM()),
		Usage: "copper trace width",
		field: func(c *Config) any { return &c.Trackpad.LineWidth }},

	{Group: "Options", Name: "drill hole", Key: "drill-hole", Kind: KindBool,
		Usage: "place vias on top and bottom pads",
		field: func(c *Config) any { return &c.Options.DrillHole }},
	{Group: "Options", Name: "add lines", Key: "add-lines", Kind: KindBool,
		Usage: "draw the sensor outline on silkscreen",
		field: func(c *Config) any { return &c.Options.AddLines }},
	{Group: "Options", Name: "add front wiring", Key: "add-front-wiring", Kind: KindBool,
		Usage: "front copper row buses",
		field: func(c *Config) any { return &c.Options.AddFrontWiring }},
	{Group: "Options", Name: "add back wiring", Key: "add-back-wiring", Kind: KindBool,
		Usage: "back copper pad-to-via connectors",
		field: func(c *Config) any { return &c.Options.AddBackWiring }},
	{Group: "Options", Name: "fill grid", Key: "fill-grid", Kind: KindBool,
		Usage: "repeat edge pads across the whole grid",
		field: func(c *Config) any { return &c.Options.FillGrid }},

	{Group: "Debug", Name: "taper enabled", Key: "taper", Kind: KindBool,
		Usage: "triangular pads (off gives rectangles)",
		field: func(c *Config) any { return &c.Debug.Taper }},
	{Group: "Debug", Name: "taper angle", Key: "taper-angle", Kind: KindInteger, Min: bound(0), Max: bound(360),
		Usage: "top edge pad orientation in degrees",
		field: func(c *Config) any { return &c.Debug.TaperAngle }},

	{Group: "Text", Name: "text size", Key: "text-size", Kind: KindLength, Max: bound(MaxLength.MM()),
		Usage: "reference/value text height",
		field: func(c *Config) any { return &c.Text.Size }},
	{Group: "Text", Name: "text thickness", Key: "text-thickness", Kind: KindLength, Max: bound(MaxLength.MM()),
		Usage: "text and silkscreen stroke",
		field: func(c *Config) any { return &c.Text.Thickness }},

	{Group: "Output", Name: "rounding", Key: "rounding", Kind: KindString,
		Usage: "coordinate rounding: truncate or nearest",
		field: func(c *Config) any { return &c.Rounding }},
}

// Parameters returns the host parameter table in registration order
func Parameters() []Param {
	out := make([]Param, len(params))
	copy(out, params)
	return out
}

// LookupParam finds a parameter by key or host name
func LookupParam(key string) (Param, bool) {
	for _, p := range params {
		if p.Key == key || p.Name == key {
			return p, true
		}
	}
	return Param{}, false
}

// SetParam parses value into the parameter named key
func SetParam(cfg *Config, key, value string) error {
	p, ok := LookupParam(key)
	if !ok {
		return fmt.Errorf("unknown parameter %q", key)
	}

	switch f := p.field(cfg).(type) {
	case *units.Length:
		if err := f.Set(value); err != nil {
			return fmt.Errorf("parameter %q: %w", p.Name, err)
		}
	case *int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parameter %q: invalid integer %q", p.Name, value)
		}
		*f = v
	case *bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parameter %q: invalid bool %q", p.Name, value)
		}
		*f = v
	case *Rounding:
		*f = Rounding(value)
	default:
		return fmt.Errorf("parameter %q: unsupported field type %T", p.Name, f)
	}
	return nil
}

// ParamValue formats the current value of a parameter
func ParamValue(cfg *Config, key string) (string, error) {
	p, ok := LookupParam(key)
	if !ok {
		return "", fmt.Errorf("unknown parameter %q", key)
	}

	switch f := p.field(cfg).(type) {
	case *units.Length:
		return f.String(), nil
	case *int:
		return strconv.Itoa(*f), nil
	case *bool:
		return strconv.FormatBool(*f), nil
	case *Rounding:
		return string(*f), nil
	}
	return "", fmt.Errorf("parameter %q: unsupported field type", p.Name)
}
