// Package kicadsexp reads and writes the S-expression syntax used by KiCad
// footprint and board files. Quoted strings and bare symbols are kept apart
// so a parsed tree can be written back without changing its meaning.
package kicadsexp

import (
	"io"
	"strings"
)

// Sexp is a node of the tree: an atom or a list
type Sexp interface {
	// IsLeaf reports whether the node is an atom
	IsLeaf() bool

	// LeafCount returns the number of elements in a list (1 for atoms)
	LeafCount() int

	// Head returns the first element of a list
	Head() Sexp

	// Tail returns the list without its first element
	Tail() Sexp

	// String returns the node in file syntax
	String() string
}

// Symbol is a bare atom: a keyword, number or unquoted identifier
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) LeafCount() int { return 1 }
func (s Symbol) Head() Sexp     { return s }
func (s Symbol) Tail() Sexp     { return nil }
func (s Symbol) String() string { return string(s) }

// Quoted is a string atom written between double quotes
type Quoted string

func (q Quoted) IsLeaf() bool   { return true }
func (q Quoted) LeafCount() int { return 1 }
func (q Quoted) Head() Sexp     { return q }
func (q Quoted) Tail() Sexp     { return nil }

func (q Quoted) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range string(q) {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// AtomValue returns the text of a Symbol or Quoted atom
func AtomValue(s Sexp) (string, bool) {
	switch a := s.(type) {
	case Symbol:
		return string(a), true
	case Quoted:
		return string(a), true
	}
	return "", false
}

// List is a parenthesized sequence
type List struct {
	elements []Sexp
}

// NewList builds a list from its elements
func NewList(elements ...Sexp) *List {
	return &List{elements: elements}
}

// Node builds a list headed by the symbol name, e.g. Node("layer", Quoted("F.Cu"))
func Node(name string, args ...Sexp) *List {
	return &List{elements: append([]Sexp{Symbol(name)}, args...)}
}

// Append adds elements to the end of the list
func (l *List) Append(elements ...Sexp) *List {
	l.elements = append(l.elements, elements...)
	return l
}

func (l *List) IsLeaf() bool { return false }

func (l *List) LeafCount() int {
	return len(l.elements)
}

func (l *List) Head() Sexp {
	if len(l.elements) == 0 {
		return nil
	}
	return l.elements[0]
}

func (l *List) Tail() Sexp {
	if len(l.elements) <= 1 {
		return nil
	}
	return &List{elements: l.elements[1:]}
}

func (l *List) String() string {
	var b strings.Builder
	writeInline(&b, l)
	return b.String()
}

// Get returns the element at index, or nil when out of range
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Len returns the number of elements
func (l *List) Len() int {
	return len(l.elements)
}

// Elements returns the list's children. The slice is shared with the list.
func (l *List) Elements() []Sexp {
	return l.elements
}

// Parse reads every top-level expression from r
func Parse(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseString reads every top-level expression from s
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
