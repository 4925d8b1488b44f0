package ordtree

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/npillmayer/ordtree/btree"
)

// BTree is an immutable, ordered key-value container backed by a B-tree.
//
// The zero value is not usable; create trees with New, NewWithConfig,
// Assemble or a Builder.
type BTree[K, V any] struct {
	cfg  btree.Config[K]
	root btree.Node[K, V]
	len  int
}

// New creates a tree holding exactly one key/value pair. The root of the
// tree is a single-entry leaf. lowerBound is the minimum number of entries
// per non-root node; the upper bound is 2 × lowerBound.
//
// A lowerBound below 1 is rejected with ErrInvalidConfiguration.
func New[K cmp.Ordered, V any](key K, value V, lowerBound int) (*BTree[K, V], error) {
	return NewWithConfig[K, V](key, value, btree.OrderedConfig[K](lowerBound))
}

// NewWithConfig is like New, but with a client-supplied configuration, which
// includes the key comparator.
func NewWithConfig[K, V any](key K, value V, cfg btree.Config[K]) (*BTree[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	T().Debugf("ordtree: new tree, lower bound %d", cfg.LowerBound)
	return &BTree[K, V]{
		cfg:  cfg,
		root: btree.NewLeaf(btree.NewLeafEntry(key, value)),
		len:  1,
	}, nil
}

// Assemble wraps a hand-built node structure into a tree. The configuration
// is validated and root is checked for ordering and shape invariants (see
// btree.CheckOrder); occupancy bounds are not enforced.
func Assemble[K, V any](root btree.Node[K, V], cfg btree.Config[K]) (*BTree[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrIllegalArguments)
	}
	height, err := btree.CheckOrder(root, cfg.Compare)
	if err != nil {
		return nil, err
	}
	t := &BTree[K, V]{cfg: cfg, root: root, len: btree.Count(root)}
	T().Debugf("ordtree: assembled tree of height %d with %d entries", height, t.len)
	return t, nil
}

// Get returns the value associated with key. If no entry with key exists,
// Get returns the zero value and false.
func (t *BTree[K, V]) Get(key K) (V, bool) {
	if t == nil || t.root == nil {
		var zero V
		return zero, false
	}
	return btree.Lookup(t.root, key, t.cfg)
}

// Len returns the number of entries in the tree.
func (t *BTree[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.len
}

// LowerBound returns the minimum number of entries per non-root node.
func (t *BTree[K, V]) LowerBound() int {
	if t == nil {
		return 0
	}
	return t.cfg.LowerBound
}

// UpperBound returns the maximum number of entries per node, 2 × LowerBound.
func (t *BTree[K, V]) UpperBound() int {
	if t == nil {
		return 0
	}
	return t.cfg.UpperBound()
}

// Config returns a copy of the tree's configuration. A nil tree has a zero
// configuration.
func (t *BTree[K, V]) Config() btree.Config[K] {
	if t == nil {
		return btree.Config[K]{}
	}
	return t.cfg
}

// Root returns the root node of the tree.
func (t *BTree[K, V]) Root() btree.Node[K, V] {
	if t == nil {
		return nil
	}
	return t.root
}

// Height returns the tree height, where 1 means a leaf root.
func (t *BTree[K, V]) Height() int {
	if t == nil {
		return 0
	}
	return btree.Height(t.root)
}

// All returns an iterator over all entries in ascending key order.
func (t *BTree[K, V]) All() iter.Seq2[K, V] {
	if t == nil {
		return btree.All[K, V](nil)
	}
	return btree.All(t.root)
}

// Check validates the ordering and shape invariants of the tree.
func (t *BTree[K, V]) Check() error {
	if t == nil || t.root == nil {
		return fmt.Errorf("%w: void tree", ErrIllegalArguments)
	}
	_, err := btree.CheckOrder(t.root, t.cfg.Compare)
	return err
}

// String renders the leaf entries of the tree for debugging. Every entry
// appears as " // Key: <k>, value: <v>; ". Branch nodes do not contribute
// to the output.
func (t *BTree[K, V]) String() string {
	if t == nil || t.root == nil {
		return ""
	}
	return t.root.String()
}
