package btree

import (
	"errors"
	"iter"
)

// Walk visits the subtree rooted at n in pre-order, calling fn for every
// node together with its depth (the root has depth 0). Children of a branch
// are visited left to right, the rightmost child last.
//
// Walk stops at the first error returned by fn and returns it. Returning
// SkipChildren from fn for a branch skips its subtrees.
func Walk[K, V any](n Node[K, V], fn func(n Node[K, V], depth int) error) error {
	if n == nil || fn == nil {
		return nil
	}
	return walk(n, 0, fn)
}

// SkipChildren may be returned by a Walk callback to prune the subtree below
// the current node.
var SkipChildren = errors.New("btree: skip children")

func walk[K, V any](n Node[K, V], depth int, fn func(Node[K, V], int) error) error {
	if err := fn(n, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	branch, ok := n.(*Branch[K, V])
	if !ok {
		return nil
	}
	for i := range branch.Children() {
		if err := walk(branch.Child(i), depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// All returns an in-order iterator over all key/value pairs of the subtree
// rooted at n.
func All[K, V any](n Node[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if n != nil {
			forEachEntry(n, yield)
		}
	}
}

func forEachEntry[K, V any](n Node[K, V], yield func(K, V) bool) bool {
	switch node := n.(type) {
	case *Leaf[K, V]:
		for _, e := range node.entries {
			if !yield(e.key, e.value) {
				return false
			}
		}
		return true
	case *Branch[K, V]:
		for _, e := range node.entries {
			if !forEachEntry(e.left, yield) {
				return false
			}
			if !yield(e.key, e.value) {
				return false
			}
		}
		return forEachEntry(node.rightmost, yield)
	}
	panic("btree: unknown node type")
}

// Count returns the number of entries in the subtree rooted at n.
func Count[K, V any](n Node[K, V]) int {
	var cnt int
	_ = Walk(n, func(node Node[K, V], _ int) error {
		cnt += node.Len()
		return nil
	})
	return cnt
}

// Height returns the height of the subtree rooted at n, measured along the
// leftmost path. A leaf has height 1, a nil node height 0.
func Height[K, V any](n Node[K, V]) int {
	h := 0
	for n != nil {
		h++
		branch, ok := n.(*Branch[K, V])
		if !ok {
			break
		}
		n = branch.Child(0)
	}
	return h
}
