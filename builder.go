package ordtree

import (
	"fmt"
	"slices"

	"github.com/npillmayer/ordtree/btree"
)

// Builder stages key/value pairs and finalizes them into a BTree.
//
// Pairs may be added in any order. The tree is materialized only when Tree()
// is called, by bulk loading the sorted pairs into a balanced tree. Every
// non-root node of the result holds between the configured lower and upper
// bound of entries.
type Builder[K, V any] struct {
	cfg     btree.Config[K]
	entries []btree.LeafEntry[K, V]

	done  bool
	dirty bool
	tree  *BTree[K, V]
}

// NewBuilder creates a new and empty builder for trees with configuration cfg.
// The configuration is validated when the tree is built.
func NewBuilder[K, V any](cfg btree.Config[K]) *Builder[K, V] {
	return &Builder[K, V]{cfg: cfg}
}

// Add stages a key/value pair.
//
// It is illegal to add pairs after Tree has been called.
func (b *Builder[K, V]) Add(key K, value V) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrBuilderCompleted
	}
	b.entries = append(b.entries, btree.NewLeafEntry(key, value))
	b.dirty = true
	return nil
}

// Len returns the number of staged pairs.
func (b *Builder[K, V]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Tree returns the tree built from all staged pairs.
//
// Tree fails if the configuration is invalid, if no pairs have been staged,
// or if a key has been staged more than once. Tree may be called multiple
// times.
func (b *Builder[K, V]) Tree() (*BTree[K, V], error) {
	if b == nil {
		return nil, ErrIllegalArguments
	}
	if b.dirty || b.tree == nil {
		t, err := b.build()
		if err != nil {
			return nil, err
		}
		b.tree = t
		b.dirty = false
	}
	b.done = true
	return b.tree, nil
}

// Reset drops the staged pairs and prepares the builder for a fresh build.
func (b *Builder[K, V]) Reset() {
	b.entries = nil
	b.done = false
	b.dirty = false
	b.tree = nil
}

func (b *Builder[K, V]) build() (*BTree[K, V], error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if len(b.entries) == 0 {
		return nil, fmt.Errorf("%w: builder has no entries", ErrInvalidConfiguration)
	}
	compare := b.cfg.Compare
	slices.SortStableFunc(b.entries, func(x, y btree.LeafEntry[K, V]) int {
		return compare(x.Key(), y.Key())
	})
	for i := 1; i < len(b.entries); i++ {
		if compare(b.entries[i-1].Key(), b.entries[i].Key()) == 0 {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, b.entries[i].Key())
		}
	}
	root, err := btree.BulkLoad(b.entries, b.cfg)
	if err != nil {
		return nil, err
	}
	T().Debugf("ordtree: builder completed tree with %d entries", len(b.entries))
	return &BTree[K, V]{cfg: b.cfg, root: root, len: len(b.entries)}, nil
}
