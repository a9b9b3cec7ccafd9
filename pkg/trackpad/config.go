package trackpad

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/units"
)

// Grid size bounds. MinEdgeSegments is the smallest grid that still forms
// both comb electrodes.
const (
	MinEdgeSegments = 4
	MaxEdgeSegments = 256
)

// MaxLength bounds the magnitude of every length parameter
const MaxLength units.Length = 1000

// Host bounds for the length parameters
const (
	MinViaDiameter units.Length = 0.2
	MinViaDrill    units.Length = 0.1
	MinLineWidth   units.Length = 0.1
)

// Config holds every generator parameter, grouped like the host parameter pages
type Config struct {
	Rounding Rounding       `toml:"rounding"`
	Trackpad TrackpadParams `toml:"trackpad"`
	Options  Options        `toml:"options"`
	Debug    Debug          `toml:"debug"`
	Text     Text           `toml:"text"`
}

// TrackpadParams are the sensor dimensions
type TrackpadParams struct {
	Width         units.Length `toml:"width"`
	Height        units.Length `toml:"height"`
	EdgeSegmentsX int          `toml:"edge_segments_x"`
	EdgeSegmentsY int          `toml:"edge_segments_y"`
	ViaDiameter   units.Length `toml:"via_diameter"`
	ViaDrill      units.Length `toml:"via_drill"`
	Clearance     units.Length `toml:"clearance"`
	LineWidth     units.Length `toml:"line_width"`
}

// Options toggles the optional primitive groups
type Options struct {
	DrillHole      bool `toml:"drill_hole"`
	AddLines       bool `toml:"add_lines"`
	AddFrontWiring bool `toml:"add_front_wiring"`
	AddBackWiring  bool `toml:"add_back_wiring"`
	FillGrid       bool `toml:"fill_grid"` // repeat each edge's pads across the whole grid
}

// Debug holds the pad shape debugging knobs
type Debug struct {
	Taper      bool `toml:"taper"`
	TaperAngle int  `toml:"taper_angle"` // top-edge orientation; the other edges follow in 45° steps
}

// Text sizes the reference/value labels
type Text struct {
	Size      units.Length `toml:"size"`
	Thickness units.Length `toml:"thickness"`
}

// DefaultConfig returns the host defaults
func DefaultConfig() Config {
	return Config{
		Rounding: RoundTruncate,
		Trackpad: TrackpadParams{
			Width:         50,
			Height:        20,
			EdgeSegmentsX: 5,
			EdgeSegmentsY: 5,
			ViaDiameter:   0.5,
			ViaDrill:      0.2,
			Clearance:     0.2,
			LineWidth:     0.127,
		},
		Options: Options{
			DrillHole:      true,
			AddLines:       true,
			AddFrontWiring: true,
			AddBackWiring:  true,
		},
		Debug: Debug{
			Taper:      true,
			TaperAngle: 135,
		},
		Text: Text{
			Size:      1.0,
			Thickness: 0.15,
		},
	}
}

// ConfigError reports the parameter whose constraint failed
type ConfigError struct {
	Param      string // host parameter name, e.g. "edge segments x"
	Constraint string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Constraint)
}

// IsConfigError reports whether err is or wraps a *ConfigError
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func configErrorf(param, format string, args ...any) error {
	return &ConfigError{Param: param, Constraint: fmt.Sprintf(format, args...)}
}

// Validate checks the configuration before any geometry is produced.
// It returns the first failing constraint as a *ConfigError.
func (c Config) Validate() error {
	t := c.Trackpad

	for _, l := range c.lengths() {
		if !l.value.IsFinite() {
			return configErrorf(l.param, "must be a finite number (got %v)", l.value.MM())
		}
		if math.Abs(l.value.MM()) > MaxLength.MM() {
			return configErrorf(l.param, "must not exceed %s (got %s)", MaxLength, l.value)
		}
	}

	if t.Width <= 0 {
		return configErrorf("width", "must be positive (got %s)", t.Width)
	}
	if t.Height <= 0 {
		return configErrorf("height", "must be positive (got %s)", t.Height)
	}
	if t.LineWidth < MinLineWidth {
		return configErrorf("line width", "must be at least %s (got %s)", MinLineWidth, t.LineWidth)
	}

	if t.EdgeSegmentsX < MinEdgeSegments {
		return configErrorf("edge segments x", "must be at least %d (got %d)", MinEdgeSegments, t.EdgeSegmentsX)
	}
	if t.EdgeSegmentsY < MinEdgeSegments {
		return configErrorf("edge segments y", "must be at least %d (got %d)", MinEdgeSegments, t.EdgeSegmentsY)
	}
	if t.EdgeSegmentsX > MaxEdgeSegments {
		return configErrorf("edge segments x", "must be at most %d (got %d)", MaxEdgeSegments, t.EdgeSegmentsX)
	}
	if t.EdgeSegmentsY > MaxEdgeSegments {
		return configErrorf("edge segments y", "must be at most %d (got %d)", MaxEdgeSegments, t.EdgeSegmentsY)
	}

	if c.Options.DrillHole {
		if t.ViaDiameter < MinViaDiameter {
			return configErrorf("via diameter", "must be at least %s (got %s)", MinViaDiameter, t.ViaDiameter)
		}
		if t.ViaDrill < MinViaDrill {
			return configErrorf("via drill", "must be at least %s (got %s)", MinViaDrill, t.ViaDrill)
		}
		if t.ViaDrill >= t.ViaDiameter {
			return configErrorf("via drill", "must be smaller than via diameter %s (got %s)", t.ViaDiameter, t.ViaDrill)
		}
	}

	switch c.Rounding {
	case RoundTruncate, RoundNearest:
	default:
		return configErrorf("rounding", "must be %q or %q (got %q)", RoundTruncate, RoundNearest, c.Rounding)
	}

	if t.Clearance < 0 {
		return configErrorf("clearance", "must not be negative (got %s)", t.Clearance)
	}
	g := newGrid(c)
	if g.clearance >= g.pitchX {
		return configErrorf("clearance", "must be smaller than the x pad pitch %s (got %s)",
			units.MM(g.pitchX/units.NanometersPerMM), t.Clearance)
	}
	if g.clearance >= g.pitchY {
		return configErrorf("clearance", "must be smaller than the y pad pitch %s (got %s)",
			units.MM(g.pitchY/units.NanometersPerMM), t.Clearance)
	}
	if g.round.apply(g.pitchX-g.clearance) < 1 || g.round.apply(g.pitchY-g.clearance) < 1 {
		return configErrorf("clearance", "leaves no copper after rounding (got %s)", t.Clearance)
	}

	if c.Debug.TaperAngle < 0 || c.Debug.TaperAngle > 360 {
		return configErrorf("taper angle", "must be within 0..360 (got %d)", c.Debug.TaperAngle)
	}
	if c.Text.Size <= 0 {
		return configErrorf("text size", "must be positive (got %s)", c.Text.Size)
	}
	if c.Text.Thickness <= 0 {
		return configErrorf("text thickness", "must be positive (got %s)", c.Text.Thickness)
	}

	return nil
}

type namedLength struct {
	param string
	value units.Length
}

// lengths lists every length parameter in table order
func (c Config) lengths() []namedLength {
	t := c.Trackpad
	return []namedLength{
		{"width", t.Width},
		{"height", t.Height},
		{"via diameter", t.ViaDiameter},
		{"via drill", t.ViaDrill},
		{"clearance", t.Clearance},
		{"line width", t.LineWidth},
		{"text size", c.Text.Size},
		{"text thickness", c.Text.Thickness},
	}
}

// DisplayName returns the footprint value string, e.g. "Trackpad-50x20mm"
func (c Config) DisplayName() string {
	return fmt.Sprintf("Trackpad-%sx%smm",
		units.FormatMM(c.Trackpad.Width.MM()), units.FormatMM(c.Trackpad.Height.MM()))
}

// LoadConfig reads a TOML parameter file on top of DefaultConfig.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// DecodeConfig reads TOML parameters from r on top of DefaultConfig
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// EncodeConfig writes cfg as a complete TOML parameter file
func EncodeConfig(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
