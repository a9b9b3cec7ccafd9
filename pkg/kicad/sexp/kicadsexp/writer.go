package kicadsexp

import (
	"bufio"
	"io"
	"strings"
)

// Indent is the per-level indentation used by Encode
const Indent = "  "

// Encode writes s in KiCad's layout: the leading atoms of the root list stay
// on its first line and every child list gets a line of its own. Deeper
// lists are written inline. A trailing newline is always added.
func Encode(w io.Writer, s Sexp) error {
	bw := bufio.NewWriter(w)

	root, ok := s.(*List)
	if !ok {
		bw.WriteString(s.String())
		bw.WriteByte('\n')
		return bw.Flush()
	}

	bw.WriteByte('(')
	nested := false
	for i, elem := range root.elements {
		if _, isList := elem.(*List); isList {
			nested = true
			bw.WriteString("\n" + Indent)
			bw.WriteString(elem.String())
			continue
		}
		if nested {
			bw.WriteString("\n" + Indent)
		} else if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(elem.String())
	}
	if nested {
		bw.WriteByte('\n')
	}
	bw.WriteString(")\n")
	return bw.Flush()
}

func writeInline(b *strings.Builder, l *List) {
	b.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		if sub, ok := elem.(*List); ok {
			writeInline(b, sub)
		} else {
			b.WriteString(elem.String())
		}
	}
	b.WriteByte(')')
}
