package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/sexp/kicadsexp"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/units"
)

// Reading helpers

// FindNode returns the first child list whose head is key,
// e.g. FindNode(pad, "at") finds (at 1 2 90)
func FindNode(s kicadsexp.Sexp, key string) (kicadsexp.Sexp, bool) {
	for _, item := range SexpToSlice(s) {
		if name, err := GetNodeName(item); err == nil && !item.IsLeaf() && name == key {
			return item, true
		}
	}
	return nil, false
}

// FindAllNodes returns every child list whose head is key
func FindAllNodes(s kicadsexp.Sexp, key string) []kicadsexp.Sexp {
	var results []kicadsexp.Sexp
	for _, item := range SexpToSlice(s) {
		if item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			results = append(results, item)
		}
	}
	return results
}

// SexpToSlice returns the elements of a list, or nil for atoms
func SexpToSlice(s kicadsexp.Sexp) []kicadsexp.Sexp {
	if l, ok := s.(*kicadsexp.List); ok {
		return l.Elements()
	}
	return nil
}

// GetListItems returns a list's elements after its head,
// e.g. (layers "F.Cu" "F.Mask") gives ["F.Cu", "F.Mask"]
func GetListItems(s kicadsexp.Sexp) []kicadsexp.Sexp {
	items := SexpToSlice(s)
	if len(items) <= 1 {
		return nil
	}
	return items[1:]
}

// GetString returns the atom at index, quoted or not. Index 0 is the head.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	if s == nil || s.IsLeaf() {
		return "", fmt.Errorf("expected list, got %v", s)
	}
	items := SexpToSlice(s)
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}
	if v, ok := kicadsexp.AtomValue(items[index]); ok {
		return v, nil
	}
	return "", fmt.Errorf("expected atom at index %d, got list", index)
}

// GetStrings returns every atom after the head
func GetStrings(s kicadsexp.Sexp) []string {
	var out []string
	for _, item := range GetListItems(s) {
		if v, ok := kicadsexp.AtomValue(item); ok {
			out = append(out, v)
		}
	}
	return out
}

// GetFloat parses the atom at index as a number
func GetFloat(s kicadsexp.Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return val, nil
}

// GetInt parses the atom at index as an integer
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// GetPosition reads an (at X Y [angle]) node; a missing angle is zero
func GetPosition(s kicadsexp.Sexp) (PositionAngle, error) {
	key, err := GetString(s, 0)
	if err != nil {
		return PositionAngle{}, err
	}
	if key != "at" {
		return PositionAngle{}, fmt.Errorf("expected 'at', got %q", key)
	}

	pos, err := GetPositionXY(s)
	if err != nil {
		return PositionAngle{}, err
	}
	result := PositionAngle{Position: pos}
	if angle, err := GetFloat(s, 3); err == nil {
		result.Angle = Angle(angle)
	}
	return result, nil
}

// GetPositionXY reads a (keyword X Y) node such as start, end or size
func GetPositionXY(s kicadsexp.Sexp) (Position, error) {
	x, err := GetFloat(s, 1)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse X: %w", err)
	}
	y, err := GetFloat(s, 2)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse Y: %w", err)
	}
	return Position{X: x, Y: y}, nil
}

// HasSymbol reports whether a list holds the bare symbol
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	for _, item := range SexpToSlice(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok && string(sym) == symbol {
			return true
		}
	}
	return false
}

// GetNodeName returns the head symbol of a list
func GetNodeName(s kicadsexp.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("expected node, got nil")
	}
	if sym, ok := s.Head().(kicadsexp.Symbol); ok {
		return string(sym), nil
	}
	return "", fmt.Errorf("expected symbol at head of %s", s)
}

// GetUUID reads a (uuid "...") node
func GetUUID(s kicadsexp.Sexp) (UUID, error) {
	if key, err := GetString(s, 0); err != nil || key != "uuid" {
		return "", fmt.Errorf("expected 'uuid' node")
	}
	id, err := GetString(s, 1)
	if err != nil {
		return "", err
	}
	return UUID(id), nil
}

// GetEffects reads an (effects (font (size H W) (thickness T)) [hide]) node
func GetEffects(s kicadsexp.Sexp) (Effects, error) {
	var eff Effects
	if font, ok := FindNode(s, "font"); ok {
		if size, ok := FindNode(font, "size"); ok {
			wh, err := GetPositionXY(size)
			if err != nil {
				return eff, fmt.Errorf("font size: %w", err)
			}
			eff.Font.Size = Size{Width: wh.Y, Height: wh.X}
		}
		if th, ok := FindNode(font, "thickness"); ok {
			v, err := GetFloat(th, 1)
			if err != nil {
				return eff, fmt.Errorf("font thickness: %w", err)
			}
			eff.Font.Thickness = v
		}
	}
	eff.Hide = HasSymbol(s, "hide")
	return eff, nil
}

// Writing helpers

// Num formats a millimetre or degree value as a bare number
func Num(v float64) kicadsexp.Symbol {
	return kicadsexp.Symbol(units.FormatMM(v))
}

// XY builds a (key X Y) node
func XY(key string, p Position) *kicadsexp.List {
	return kicadsexp.Node(key, Num(p.X), Num(p.Y))
}

// At builds an (at X Y [angle]) node; a zero angle is omitted
func At(p PositionAngle) *kicadsexp.List {
	n := XY("at", p.Position)
	if p.Angle != 0 {
		n.Append(Num(float64(p.Angle)))
	}
	return n
}

// SizeNode builds a (size W H) node
func SizeNode(s Size) *kicadsexp.List {
	return kicadsexp.Node("size", Num(s.Width), Num(s.Height))
}

// Layer builds a (layer "name") node
func Layer(name string) *kicadsexp.List {
	return kicadsexp.Node("layer", kicadsexp.Quoted(name))
}

// Layers builds a (layers "a" "b" ...) node
func Layers(names ...string) *kicadsexp.List {
	n := kicadsexp.Node("layers")
	for _, name := range names {
		n.Append(kicadsexp.Quoted(name))
	}
	return n
}

// UUIDNode builds a (uuid "...") node
func UUIDNode(id UUID) *kicadsexp.List {
	return kicadsexp.Node("uuid", kicadsexp.Quoted(string(id)))
}

// EffectsNode builds the (effects (font ...)) node of a text item
func EffectsNode(e Effects) *kicadsexp.List {
	n := kicadsexp.Node("effects", kicadsexp.Node("font",
		kicadsexp.Node("size", Num(e.Font.Size.Height), Num(e.Font.Size.Width)),
		kicadsexp.Node("thickness", Num(e.Font.Thickness)),
	))
	if e.Hide {
		n.Append(kicadsexp.Symbol("hide"))
	}
	return n
}
