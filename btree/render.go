package btree

import (
	"fmt"
	"strings"
)

// Leaf entries render as "Key: <k>, value: <v>; ", each preceded by a
// separator. Branch nodes render as the empty string, so dumping a tree
// with branches only shows the contents of a leaf root.
const entrySeparator = " // "

func (e LeafEntry[K, V]) String() string {
	var sb strings.Builder
	e.writeTo(&sb)
	return sb.String()
}

func (e LeafEntry[K, V]) writeTo(sb *strings.Builder) {
	fmt.Fprintf(sb, "Key: %v, value: %v; ", e.key, e.value)
}

func (l *Leaf[K, V]) String() string {
	var sb strings.Builder
	l.writeTo(&sb)
	return sb.String()
}

func (l *Leaf[K, V]) writeTo(sb *strings.Builder) {
	for _, e := range l.entries {
		sb.WriteString(entrySeparator)
		e.writeTo(sb)
	}
}

func (b *Branch[K, V]) String() string {
	return ""
}
