// Package units parses and formats the physical lengths used by footprint parameters.
//
// Lengths are stored in millimetres. Host internal units are integer nanometres,
// obtained with Nanometers (round to nearest).
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Conversion factors to millimetres
const (
	MillimetersPerInch = 25.4
	MillimetersPerMil  = 0.0254
	NanometersPerMM    = 1e6
)

// lengthLexer tokenizes expressions like "0.5mm", "20 mil" or "-1.2e-1in"
var lengthLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Unit", Pattern: `[a-zA-Zµ"]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// lengthExpr is the grammar for a single length literal
type lengthExpr struct {
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Unit?"`
}

var lengthParser = participle.MustBuild[lengthExpr](
	participle.Lexer(lengthLexer),
	participle.Elide("Whitespace"),
)

// unitScale maps a unit suffix to its size in millimetres
var unitScale = map[string]float64{
	"":     1,
	"mm":   1,
	"cm":   10,
	"um":   1e-3,
	"µm":   1e-3,
	"nm":   1e-6,
	"in":   MillimetersPerInch,
	"inch": MillimetersPerInch,
	`"`:    MillimetersPerInch,
	"mil":  MillimetersPerMil,
	"mils": MillimetersPerMil,
	"thou": MillimetersPerMil,
}

// Length is a linear dimension in millimetres
type Length float64

// MM returns a length of v millimetres
func MM(v float64) Length {
	return Length(v)
}

// ParseLength parses a length literal. A bare number is taken as millimetres.
func ParseLength(s string) (Length, error) {
	expr, err := lengthParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", s, err)
	}

	scale, ok := unitScale[strings.ToLower(expr.Unit)]
	if !ok {
		return 0, fmt.Errorf("invalid length %q: unknown unit %q", s, expr.Unit)
	}

	l := Length(expr.Value * scale)
	if !l.IsFinite() {
		return 0, fmt.Errorf("invalid length %q: out of range", s)
	}
	return l, nil
}

// IsFinite reports whether the length is neither NaN nor infinite
func (l Length) IsFinite() bool {
	return !math.IsNaN(float64(l)) && !math.IsInf(float64(l), 0)
}

// MM returns the length in millimetres
func (l Length) MM() float64 {
	return float64(l)
}

// Nanometers converts to integer nanometres, rounding to nearest
func (l Length) Nanometers() int64 {
	return int64(math.Round(float64(l) * NanometersPerMM))
}

// FormatMM formats a millimetre value without exponent and without trailing zeros
func FormatMM(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// String returns the length with an "mm" suffix, e.g. "0.5mm"
func (l Length) String() string {
	return FormatMM(float64(l)) + "mm"
}

// Set implements pflag.Value
func (l *Length) Set(s string) error {
	v, err := ParseLength(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Type implements pflag.Value
func (l *Length) Type() string {
	return "length"
}

// MarshalText encodes the length as a string with unit
func (l Length) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts any literal understood by ParseLength
func (l *Length) UnmarshalText(text []byte) error {
	return l.Set(string(text))
}

// UnmarshalTOML accepts TOML numbers (millimetres) and strings with units
func (l *Length) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case float64:
		if !Length(val).IsFinite() {
			return fmt.Errorf("invalid length value %v", val)
		}
		*l = Length(val)
	case int64:
		*l = Length(val)
	case string:
		return l.Set(val)
	default:
		return fmt.Errorf("invalid length value %v (%T)", v, v)
	}
	return nil
}
