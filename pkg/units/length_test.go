package units

import (
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMM  float64
		wantErr bool
	}{
		{name: "bare number is mm", input: "50", wantMM: 50},
		{name: "decimal mm", input: "0.127mm", wantMM: 0.127},
		{name: "space before unit", input: "0.5 mm", wantMM: 0.5},
		{name: "centimetres", input: "2cm", wantMM: 20},
		{name: "mils", input: "10mil", wantMM: 0.254},
		{name: "inches", input: "0.1in", wantMM: 2.54},
		{name: "inch mark", input: `1"`, wantMM: 25.4},
		{name: "micrometres", input: "500um", wantMM: 0.5},
		{name: "upper case unit", input: "3MM", wantMM: 3},
		{name: "exponent", input: "1e-1mm", wantMM: 0.1},
		{name: "leading dot", input: ".2", wantMM: 0.2},
		{name: "negative", input: "-1.5", wantMM: -1.5},
		{name: "unknown unit", input: "3ft", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "mm", wantErr: true},
		{name: "two numbers", input: "1 2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLength(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLength(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLength(%q) unexpected error: %v", tt.input, err)
			}
			if math.Abs(got.MM()-tt.wantMM) > 1e-9 {
				t.Errorf("ParseLength(%q) = %v mm, want %v mm", tt.input, got.MM(), tt.wantMM)
			}
		})
	}
}

func TestLengthNanometers(t *testing.T) {
	tests := []struct {
		in   Length
		want int64
	}{
		{MM(50), 50000000},
		{MM(0.2), 200000},
		{MM(0.127), 127000},
		{MM(0.0000004), 0},
		{MM(0.0000006), 1},
	}
	for _, tt := range tests {
		if got := tt.in.Nanometers(); got != tt.want {
			t.Errorf("Length(%v).Nanometers() = %d, want %d", float64(tt.in), got, tt.want)
		}
	}
}

func TestFormatMM(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{50, "50"},
		{0.5, "0.5"},
		{0.127, "0.127"},
		{-22.6, "-22.6"},
		{0.1 + 0.2, "0.3"},
		{-0.0000001, "0"},
		{12.3456789, "12.345679"},
	}
	for _, tt := range tests {
		if got := FormatMM(tt.in); got != tt.want {
			t.Errorf("FormatMM(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLengthFlagValue(t *testing.T) {
	var l Length
	if err := l.Set("20mil"); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	if got := l.String(); got != "0.508mm" {
		t.Errorf("String() = %q, want %q", got, "0.508mm")
	}
	if l.Type() != "length" {
		t.Errorf("Type() = %q, want %q", l.Type(), "length")
	}
	if err := l.Set("abc"); err == nil {
		t.Error("Set(abc) expected error")
	}
}

func TestLengthUnmarshalTOML(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		wantMM  float64
		wantErr bool
	}{
		{name: "float", in: 0.5, wantMM: 0.5},
		{name: "integer", in: int64(50), wantMM: 50},
		{name: "string with unit", in: "1in", wantMM: 25.4},
		{name: "bool", in: true, wantErr: true},
		{name: "nan", in: math.NaN(), wantErr: true},
		{name: "inf", in: math.Inf(1), wantErr: true},
		{name: "negative inf", in: math.Inf(-1), wantErr: true},
		{name: "overflowing string", in: "1e308in", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Length
			err := l.UnmarshalTOML(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("UnmarshalTOML() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalTOML() unexpected error: %v", err)
			}
			if math.Abs(l.MM()-tt.wantMM) > 1e-9 {
				t.Errorf("UnmarshalTOML(%v) = %v, want %v", tt.in, l.MM(), tt.wantMM)
			}
		})
	}
}

func TestLengthIsFinite(t *testing.T) {
	tests := []struct {
		in   Length
		want bool
	}{
		{0, true},
		{-1.5, true},
		{Length(math.MaxFloat64), true},
		{Length(math.NaN()), false},
		{Length(math.Inf(1)), false},
		{Length(math.Inf(-1)), false},
	}
	for _, tt := range tests {
		if got := tt.in.IsFinite(); got != tt.want {
			t.Errorf("Length(%v).IsFinite() = %v, want %v", float64(tt.in), got, tt.want)
		}
	}

	if _, err := ParseLength("1e308in"); err == nil {
		t.Error("ParseLength(1e308in) error = nil, want out of range")
	}
}
