package ordtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/ordtree/btree"
)

type nodeids[K, V any] struct {
	idTable map[btree.Node[K, V]]int
	max     int
}

func newtable[K, V any]() nodeids[K, V] {
	return nodeids[K, V]{
		idTable: make(map[btree.Node[K, V]]int),
		max:     1,
	}
}

func (ids nodeids[K, V]) find(node btree.Node[K, V]) int {
	return ids.idTable[node]
}

func (ids *nodeids[K, V]) alloc(node btree.Node[K, V]) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Tree2Dot outputs the internal structure of a BTree in Graphviz DOT format
// (for debugging purposes).
//
// Leaves are drawn as boxes listing their keys, branches as records with one
// field per entry key. Edges run from a branch to its children, the edge to
// the rightmost child being dashed.
func Tree2Dot[K, V any](t *BTree[K, V], w io.Writer) error {
	if t == nil || t.root == nil {
		return ErrIllegalArguments
	}
	if _, err := io.WriteString(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n"); err != nil {
		return err
	}
	ids := newtable[K, V]()
	var edgelist strings.Builder
	err := btree.Walk(t.root, func(node btree.Node[K, V], depth int) error {
		ID := ids.alloc(node)
		styles := nodeDotStyles(node.IsLeaf(), depth)
		var label string
		switch n := node.(type) {
		case *btree.Leaf[K, V]:
			keys := make([]string, n.Len())
			for i := range n.Len() {
				keys[i] = boxEscape(fmt.Sprint(n.At(i).Key()))
			}
			label = strings.Join(keys, " ")
		case *btree.Branch[K, V]:
			keys := make([]string, n.Len())
			for i := range n.Len() {
				keys[i] = recordEscape(fmt.Sprint(n.At(i).Key()))
			}
			label = strings.Join(keys, " | ")
			for i := range n.Children() {
				childID := ids.alloc(n.Child(i))
				if i == n.Len() {
					fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [style=dashed];\n", ID, childID)
				} else {
					fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", ID, childID)
				}
			}
		}
		_, err := fmt.Fprintf(w, "\"%d\" [label=\"%s\"%s];\n", ID, label, styles)
		return err
	})
	if err != nil {
		T().Errorf("tree DOT: %s", err.Error())
		return err
	}
	if _, err = io.WriteString(w, edgelist.String()); err != nil {
		return err
	}
	_, err = io.WriteString(w, "}\n")
	return err
}

func nodeDotStyles(isleaf bool, depth int) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",shape=record"
	}
	s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[min(depth, len(hexcolors)-1)])
	return s
}

// boxEscape escapes text for plain quoted labels.
func boxEscape(s string) string {
	return boxEscaper.Replace(s)
}

// recordEscape escapes text for record labels, where braces, bars and angle
// brackets denote fields and ports.
func recordEscape(s string) string {
	return recordEscaper.Replace(s)
}

var (
	boxEscaper    = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	recordEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `|`, `\|`, `{`, `\{`, `}`, `\}`, `<`, `\<`, `>`, `\>`)
)

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
