package btree

import "fmt"

// LeafEntry is a key/value pair stored in a leaf. It owns no children.
type LeafEntry[K, V any] struct {
	key   K
	value V
}

// NewLeafEntry creates a leaf entry.
func NewLeafEntry[K, V any](key K, value V) LeafEntry[K, V] {
	return LeafEntry[K, V]{key: key, value: value}
}

func (e LeafEntry[K, V]) Key() K   { return e.key }
func (e LeafEntry[K, V]) Value() V { return e.value }

// BranchEntry is a key/value pair stored in a branch. It exclusively owns a
// left subtree holding keys strictly less than its key.
type BranchEntry[K, V any] struct {
	left  Node[K, V]
	key   K
	value V
}

// NewBranchEntry creates a branch entry owning subtree left.
func NewBranchEntry[K, V any](left Node[K, V], key K, value V) BranchEntry[K, V] {
	return BranchEntry[K, V]{left: left, key: key, value: value}
}

func (e BranchEntry[K, V]) Left() Node[K, V] { return e.left }
func (e BranchEntry[K, V]) Key() K           { return e.key }
func (e BranchEntry[K, V]) Value() V         { return e.value }

// Node is either a *Leaf or a *Branch. The set of implementations is closed.
type Node[K, V any] interface {
	// IsLeaf is true iff the node is a *Leaf.
	IsLeaf() bool
	// Len is the number of entries held by this node (not its subtrees).
	Len() int
	// Get looks up key in the subtree rooted at this node.
	Get(key K, compare Comparator[K]) (V, bool)
	String() string
	sealed()
}

// Leaf is an ordered sequence of leaf entries.
type Leaf[K, V any] struct {
	entries []LeafEntry[K, V]
}

// NewLeaf creates a leaf from entries, which are expected to be sorted
// ascending by key. The leaf takes ownership of the slice.
func NewLeaf[K, V any](entries ...LeafEntry[K, V]) *Leaf[K, V] {
	return &Leaf[K, V]{entries: entries}
}

func (l *Leaf[K, V]) IsLeaf() bool { return true }
func (l *Leaf[K, V]) Len() int     { return len(l.entries) }
func (l *Leaf[K, V]) sealed()      {}

// At returns the i-th entry.
func (l *Leaf[K, V]) At(i int) LeafEntry[K, V] {
	return l.entries[i]
}

// Branch is an ordered sequence of branch entries plus a rightmost child,
// which covers all keys greater than every entry's key.
type Branch[K, V any] struct {
	entries   []BranchEntry[K, V]
	rightmost Node[K, V]
}

// NewBranch creates a branch node. It rejects an empty entry sequence and
// missing children. Key ordering is not checked here; see CheckOrder.
func NewBranch[K, V any](entries []BranchEntry[K, V], rightmost Node[K, V]) (*Branch[K, V], error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: branch without entries", ErrInvariantViolation)
	}
	if rightmost == nil {
		return nil, fmt.Errorf("%w: branch without rightmost child", ErrInvariantViolation)
	}
	for i, e := range entries {
		if e.left == nil {
			return nil, fmt.Errorf("%w: branch entry %d without left child", ErrInvariantViolation, i)
		}
	}
	return &Branch[K, V]{entries: entries, rightmost: rightmost}, nil
}

func (b *Branch[K, V]) IsLeaf() bool { return false }
func (b *Branch[K, V]) Len() int     { return len(b.entries) }
func (b *Branch[K, V]) sealed()      {}

// At returns the i-th entry.
func (b *Branch[K, V]) At(i int) BranchEntry[K, V] {
	return b.entries[i]
}

// Rightmost returns the child covering keys greater than all entries.
func (b *Branch[K, V]) Rightmost() Node[K, V] {
	return b.rightmost
}

// Children returns the number of child subtrees, Len()+1.
func (b *Branch[K, V]) Children() int {
	return len(b.entries) + 1
}

// Child returns the i-th child subtree, 0 <= i <= Len(). Child(Len()) is the
// rightmost child.
func (b *Branch[K, V]) Child(i int) Node[K, V] {
	if i == len(b.entries) {
		return b.rightmost
	}
	return b.entries[i].left
}

var (
	_ Node[int, string] = (*Leaf[int, string])(nil)
	_ Node[int, string] = (*Branch[int, string])(nil)
)
