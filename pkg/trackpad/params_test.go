package trackpad

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/units"
)

func TestParametersUnique(t *testing.T) {
	keys := make(map[string]bool)
	names := make(map[string]bool)
	for _, p := range Parameters() {
		if keys[p.Key] {
			t.Errorf("duplicate key %q", p.Key)
		}
		if names[p.Name] {
			t.Errorf("duplicate name %q", p.Name)
		}
		keys[p.Key], names[p.Name] = true, true
	}
	if len(keys) != 18 {
		t.Errorf("Parameters() = %d entries, want 18", len(keys))
	}
}

func TestSetParam(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(Config) bool
	}{
		{"width", "2in", func(c Config) bool { return c.Trackpad.Width == 50.8 }},
		{"height", "300mil", func(c Config) bool { return c.Trackpad.Height.Nanometers() == 7620000 }},
		{"edge segments x", "7", func(c Config) bool { return c.Trackpad.EdgeSegmentsX == 7 }},
		{"edge-segments-y", "9", func(c Config) bool { return c.Trackpad.EdgeSegmentsY == 9 }},
		{"clearance", "150um", func(c Config) bool { return c.Trackpad.Clearance.Nanometers() == 150000 }},
		{"drill-hole", "false", func(c Config) bool { return !c.Options.DrillHole }},
		{"fill-grid", "true", func(c Config) bool { return c.Options.FillGrid }},
		{"taper angle", "90", func(c Config) bool { return c.Debug.TaperAngle == 90 }},
		{"rounding", "nearest", func(c Config) bool { return c.Rounding == RoundNearest }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := SetParam(&cfg, tt.key, tt.value); err != nil {
				t.Fatalf("SetParam(%q, %q) unexpected error: %v", tt.key, tt.value, err)
			}
			if !tt.check(cfg) {
				t.Errorf("SetParam(%q, %q) did not update the config: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestSetParamErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"depth", "1"},
		{"width", "wide"},
		{"width", "3 parsecs"},
		{"edge-segments-x", "4.5"},
		{"add-lines", "maybe"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		if err := SetParam(&cfg, tt.key, tt.value); err == nil {
			t.Errorf("SetParam(%q, %q) error = nil, want error", tt.key, tt.value)
		}
		if cfg != DefaultConfig() {
			t.Errorf("SetParam(%q, %q) modified the config on error", tt.key, tt.value)
		}
	}
}

func TestParamValueRoundTrip(t *testing.T) {
	src := DefaultConfig()
	src.Trackpad.Width = 72.5
	src.Trackpad.EdgeSegmentsY = 6
	src.Options.AddLines = false
	src.Rounding = RoundNearest

	dst := Config{}
	for _, p := range Parameters() {
		v, err := ParamValue(&src, p.Key)
		if err != nil {
			t.Fatalf("ParamValue(%q) unexpected error: %v", p.Key, err)
		}
		if err := SetParam(&dst, p.Key, v); err != nil {
			t.Fatalf("SetParam(%q, %q) unexpected error: %v", p.Key, v, err)
		}
	}
	if dst != src {
		t.Errorf("round trip through parameters = %+v, want %+v", dst, src)
	}
}

func TestParamField(t *testing.T) {
	p, ok := LookupParam("via-diameter")
	if !ok {
		t.Fatal("LookupParam(via-diameter) not found")
	}
	if p.Min == nil || *p.Min != MinViaDiameter.MM() {
		t.Errorf("via-diameter min = %v, want %v", p.Min, MinViaDiameter.MM())
	}

	if p.Max == nil || *p.Max != MaxLength.MM() {
		t.Errorf("via-diameter max = %v, want %v", p.Max, MaxLength.MM())
	}

	for _, key := range []string{"edge-segments-x", "edge-segments-y"} {
		seg, _ := LookupParam(key)
		if seg.Min == nil || *seg.Min != MinEdgeSegments || seg.Max == nil || *seg.Max != MaxEdgeSegments {
			t.Errorf("%s bounds = %v..%v, want %d..%d", key, seg.Min, seg.Max, MinEdgeSegments, MaxEdgeSegments)
		}
	}

	cfg := DefaultConfig()
	f, ok := p.Field(&cfg).(*units.Length)
	if !ok {
		t.Fatalf("Field() = %T, want *units.Length", p.Field(&cfg))
	}
	*f = 0.8
	if cfg.Trackpad.ViaDiameter != 0.8 {
		t.Errorf("ViaDiameter = %v after writing through Field()", cfg.Trackpad.ViaDiameter)
	}
}
