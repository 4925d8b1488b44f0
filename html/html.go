/*
Package html renders trees as HTML and reads key/value pairs from HTML
definition lists.

Every entry, in leaves and branches alike, is rendered as a <dt>/<dd> pair
of a definition list, so rendering a tree of strings and reading it back with ParseDefinitions
yields an equivalent tree.
*/
package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/ordtree"
	"github.com/npillmayer/ordtree/btree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes the node structure of t as a tree of nested HTML lists,
// wrapped in a <div class="ordtree">. Branch list items carry class "branch"
// and show their entry keys. Their children are listed in key order, with
// every branch entry as a list item of class "entry" between its left child
// and the next child. Leaf list items carry class "leaf". Entries of both
// kinds are written as definition lists.
func Render[K, V any](w io.Writer, t *ordtree.BTree[K, V]) error {
	if t == nil || t.Root() == nil {
		return ordtree.ErrIllegalArguments
	}
	div := element(atom.Div, "ordtree")
	ul := element(atom.Ul, "")
	div.AppendChild(ul)
	ul.AppendChild(renderNode(t.Root()))
	return html.Render(w, div)
}

func renderNode[K, V any](n btree.Node[K, V]) *html.Node {
	switch node := n.(type) {
	case *btree.Leaf[K, V]:
		li := element(atom.Li, "leaf")
		dl := element(atom.Dl, "")
		li.AppendChild(dl)
		for i := range node.Len() {
			e := node.At(i)
			appendDefinition(dl, e.Key(), e.Value())
		}
		return li
	case *btree.Branch[K, V]:
		li := element(atom.Li, "branch")
		keys := make([]string, node.Len())
		for i := range node.Len() {
			keys[i] = fmt.Sprint(node.At(i).Key())
		}
		span := element(atom.Span, "keys")
		span.AppendChild(text(strings.Join(keys, " | ")))
		li.AppendChild(span)
		ul := element(atom.Ul, "")
		li.AppendChild(ul)
		for i := range node.Len() { // in-order: left child, then its separating entry
			e := node.At(i)
			ul.AppendChild(renderNode(e.Left()))
			entry := element(atom.Li, "entry")
			dl := element(atom.Dl, "")
			entry.AppendChild(dl)
			appendDefinition(dl, e.Key(), e.Value())
			ul.AppendChild(entry)
		}
		ul.AppendChild(renderNode(node.Rightmost()))
		return li
	}
	panic("html: unknown node type")
}

func appendDefinition[K, V any](dl *html.Node, key K, value V) {
	dt := element(atom.Dt, "")
	dt.AppendChild(text(fmt.Sprint(key)))
	dd := element(atom.Dd, "")
	dd.AppendChild(text(fmt.Sprint(value)))
	dl.AppendChild(dt)
	dl.AppendChild(dd)
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// ParseDefinitions reads an HTML document and creates a tree from all
// <dt>/<dd> pairs found, in any definition list of the document. The text
// content of a <dt> element is the key, the text content of the following
// <dd> element is the value. A <dt> without <dd> maps to the empty string.
func ParseDefinitions(input io.Reader, lowerBound int) (*ordtree.BTree[string, string], error) {
	doc, err := html.Parse(input)
	if err != nil {
		return nil, err
	}
	b := ordtree.NewBuilder[string, string](btree.OrderedConfig[string](lowerBound))
	var key *string
	var walkErr error
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Dt:
				if key != nil {
					walkErr = b.Add(*key, "")
				}
				k := strings.TrimSpace(innerText(n))
				key = &k
				return
			case atom.Dd:
				if key != nil {
					walkErr = b.Add(*key, strings.TrimSpace(innerText(n)))
					key = nil
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if walkErr == nil && key != nil {
		walkErr = b.Add(*key, "")
	}
	if walkErr != nil {
		return nil, walkErr
	}
	return b.Tree()
}

// innerText collects the textual content of an HTML element and all its
// descendents.
func innerText(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
