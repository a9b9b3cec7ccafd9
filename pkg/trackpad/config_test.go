package trackpad

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/units"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantParam string // empty means valid
	}{
		{"zero width", func(c *Config) { c.Trackpad.Width = 0 }, "width"},
		{"negative height", func(c *Config) { c.Trackpad.Height = -1 }, "height"},
		{"thin line", func(c *Config) { c.Trackpad.LineWidth = 0.05 }, "line width"},
		{"three columns", func(c *Config) { c.Trackpad.EdgeSegmentsX = 3 }, "edge segments x"},
		{"three rows", func(c *Config) { c.Trackpad.EdgeSegmentsY = 3 }, "edge segments y"},
		{"four segments", func(c *Config) { c.Trackpad.EdgeSegmentsX = 4; c.Trackpad.EdgeSegmentsY = 4 }, ""},
		{"small via", func(c *Config) { c.Trackpad.ViaDiameter = 0.15 }, "via diameter"},
		{"small drill", func(c *Config) { c.Trackpad.ViaDrill = 0.05 }, "via drill"},
		{"drill equals diameter", func(c *Config) { c.Trackpad.ViaDrill = 0.5 }, "via drill"},
		{"drill larger than diameter", func(c *Config) { c.Trackpad.ViaDrill = 0.6 }, "via drill"},
		{"via ignored without drill", func(c *Config) {
			c.Options.DrillHole = false
			c.Trackpad.ViaDrill = 0.6
			c.Trackpad.ViaDiameter = 0
		}, ""},
		{"unknown rounding", func(c *Config) { c.Rounding = "floor" }, "rounding"},
		{"negative clearance", func(c *Config) { c.Trackpad.Clearance = -0.1 }, "clearance"},
		{"zero clearance", func(c *Config) { c.Trackpad.Clearance = 0 }, ""},
		{"clearance equals y pitch", func(c *Config) { c.Trackpad.Clearance = 2 }, "clearance"},
		{"clearance beyond x pitch", func(c *Config) {
			c.Trackpad.Width = 10
			c.Trackpad.Height = 100
			c.Trackpad.Clearance = 1.5
		}, "clearance"},
		{"taper angle too large", func(c *Config) { c.Debug.TaperAngle = 361 }, "taper angle"},
		{"taper angle negative", func(c *Config) { c.Debug.TaperAngle = -1 }, "taper angle"},
		{"taper angle bound", func(c *Config) { c.Debug.TaperAngle = 360 }, ""},
		{"zero text", func(c *Config) { c.Text.Size = 0 }, "text size"},
		{"zero stroke", func(c *Config) { c.Text.Thickness = 0 }, "text thickness"},
		{"nan via drill", func(c *Config) { c.Trackpad.ViaDrill = units.Length(math.NaN()) }, "via drill"},
		{"nan via drill without holes", func(c *Config) {
			c.Options.DrillHole = false
			c.Trackpad.ViaDrill = units.Length(math.NaN())
		}, "via drill"},
		{"nan line width", func(c *Config) { c.Trackpad.LineWidth = units.Length(math.NaN()) }, "line width"},
		{"nan clearance", func(c *Config) { c.Trackpad.Clearance = units.Length(math.NaN()) }, "clearance"},
		{"infinite width", func(c *Config) { c.Trackpad.Width = units.Length(math.Inf(1)) }, "width"},
		{"negative infinite height", func(c *Config) { c.Trackpad.Height = units.Length(math.Inf(-1)) }, "height"},
		{"nan text size", func(c *Config) { c.Text.Size = units.Length(math.NaN()) }, "text size"},
		{"infinite stroke", func(c *Config) { c.Text.Thickness = units.Length(math.Inf(1)) }, "text thickness"},
		{"huge height", func(c *Config) { c.Trackpad.Height = 1e13 }, "height"},
		{"width above bound", func(c *Config) { c.Trackpad.Width = MaxLength + 1 }, "width"},
		{"width at bound", func(c *Config) { c.Trackpad.Width = MaxLength }, ""},
		{"huge negative diameter", func(c *Config) { c.Trackpad.ViaDiameter = -1e20 }, "via diameter"},
		{"too many columns", func(c *Config) { c.Trackpad.EdgeSegmentsX = MaxEdgeSegments + 1 }, "edge segments x"},
		{"too many rows", func(c *Config) { c.Trackpad.EdgeSegmentsY = 100000000 }, "edge segments y"},
		{"largest grid", func(c *Config) {
			c.Trackpad.Width = MaxLength
			c.Trackpad.Height = MaxLength
			c.Trackpad.EdgeSegmentsX = MaxEdgeSegments
			c.Trackpad.EdgeSegmentsY = MaxEdgeSegments
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.wantParam == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Param != tt.wantParam {
				t.Errorf("ConfigError.Param = %q, want %q", ce.Param, tt.wantParam)
			}
			if !strings.Contains(err.Error(), tt.wantParam) {
				t.Errorf("Error() = %q does not name %q", err.Error(), tt.wantParam)
			}
		})
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trackpad.Width = 0
	cfg.Trackpad.EdgeSegmentsX = 1

	var ce *ConfigError
	if err := cfg.Validate(); !errors.As(err, &ce) || ce.Param != "width" {
		t.Errorf("Validate() = %v, want width error first", err)
	}
}

func TestIsConfigError(t *testing.T) {
	ce := &ConfigError{Param: "width", Constraint: "must be positive"}
	if !IsConfigError(ce) {
		t.Error("IsConfigError(*ConfigError) = false")
	}
	if !IsConfigError(fmt.Errorf("wrapped: %w", ce)) {
		t.Error("IsConfigError(wrapped) = false")
	}
	if IsConfigError(errors.New("other")) {
		t.Error("IsConfigError(other) = true")
	}
	if IsConfigError(nil) {
		t.Error("IsConfigError(nil) = true")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		width, height float64
		want          string
	}{
		{50, 20, "Trackpad-50x20mm"},
		{50.5, 20, "Trackpad-50.5x20mm"},
		{62.25, 31.75, "Trackpad-62.25x31.75mm"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Trackpad.Width.Set(fmt.Sprint(tt.width))
		cfg.Trackpad.Height.Set(fmt.Sprint(tt.height))
		if got := cfg.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pad.toml")
	data := `rounding = "nearest"

[trackpad]
width = "2in"
height = 25
edge_segments_x = 6

[options]
fill_grid = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	want := DefaultConfig()
	want.Rounding = RoundNearest
	want.Trackpad.Width = 50.8
	want.Trackpad.Height = 25
	want.Trackpad.EdgeSegmentsX = 6
	want.Options.FillGrid = true

	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "[trackpad]\nwidht = 10\n"},
		{"bad unit", "[trackpad]\nwidth = \"10 furlong\"\n"},
		{"syntax", "[trackpad\n"},
		{"nan lengths", "[trackpad]\nvia_drill = nan\nline_width = nan\n"},
		{"infinite width", "[trackpad]\nwidth = inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() error = nil, want error")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig(missing) error = nil, want error")
	}
}

func TestEncodeDecodeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trackpad.EdgeSegmentsY = 8
	cfg.Debug.Taper = false

	var buf bytes.Buffer
	if err := EncodeConfig(&buf, cfg); err != nil {
		t.Fatalf("EncodeConfig() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `width = "50mm"`) {
		t.Errorf("encoded config missing width:\n%s", buf.String())
	}

	got, err := DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("DecodeConfig() unexpected error: %v", err)
	}
	if got != cfg {
		t.Errorf("DecodeConfig(EncodeConfig(cfg)) = %+v, want %+v", got, cfg)
	}
}
