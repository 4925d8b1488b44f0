package btree

import "sort"

// Get scans the leaf entries in stored order and returns the value of the
// first entry whose key compares equal to key.
func (l *Leaf[K, V]) Get(key K, compare Comparator[K]) (V, bool) {
	for _, e := range l.entries {
		if compare(e.key, key) == 0 {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Search is like Get, but bisects the entries. It requires the entries to
// be sorted, which is a node invariant; for sorted leaves the result is
// identical to Get.
func (l *Leaf[K, V]) Search(key K, compare Comparator[K]) (V, bool) {
	i := sort.Search(len(l.entries), func(i int) bool {
		return compare(l.entries[i].key, key) >= 0
	})
	if i < len(l.entries) && compare(l.entries[i].key, key) == 0 {
		return l.entries[i].value, true
	}
	var zero V
	return zero, false
}

// Get scans the branch entries in ascending order. An entry with an equal
// key is a hit. The first entry with a greater key sends the search into its
// left subtree, and the result of that subtree is final. If no entry
// matches or exceeds key, the search continues in the rightmost child.
func (b *Branch[K, V]) Get(key K, compare Comparator[K]) (V, bool) {
	child, value, found := b.descend(key, compare)
	if found {
		return value, true
	}
	return child.Get(key, compare)
}

// descend performs the entry scan of a single branch. It either returns a
// hit or the child subtree in which key must reside, if present at all.
func (b *Branch[K, V]) descend(key K, compare Comparator[K]) (Node[K, V], V, bool) {
	for _, e := range b.entries {
		c := compare(e.key, key)
		if c == 0 {
			return nil, e.value, true
		}
		if c > 0 {
			var zero V
			return e.left, zero, false
		}
	}
	var zero V
	return b.rightmost, zero, false
}

// Lookup finds key in the subtree rooted at n, honoring cfg.Search for
// leaves. Absence is reported as (zero, false), never as an error.
func Lookup[K, V any](n Node[K, V], key K, cfg Config[K]) (V, bool) {
	assert(cfg.Compare != nil, "lookup without comparator")
	cfg = cfg.normalized()
	for n != nil {
		switch node := n.(type) {
		case *Leaf[K, V]:
			if cfg.Search == BinarySearch {
				return node.Search(key, cfg.Compare)
			}
			return node.Get(key, cfg.Compare)
		case *Branch[K, V]:
			child, value, found := node.descend(key, cfg.Compare)
			if found {
				return value, true
			}
			n = child
		default:
			panic("btree: unknown node type")
		}
	}
	var zero V
	return zero, false
}
