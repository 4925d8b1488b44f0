package btree

import (
	"fmt"
	"math"
)

// BulkLoad builds a balanced tree from entries, which must be sorted strictly
// ascending by cfg.Compare. The resulting tree has minimal height, and every
// non-root node holds between cfg.LowerBound and cfg.UpperBound() entries.
//
// BulkLoad constructs a fresh tree; it never grows an existing one. Entries
// are distributed evenly: at every level the smallest number of children is
// chosen that can hold the entries, and the remaining entries are spread over
// the children with sizes differing by at most one.
func BulkLoad[K, V any](entries []LeafEntry[K, V], cfg Config[K]) (Node[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: cannot bulk load an empty sequence", ErrInvalidConfig)
	}
	for i := 1; i < len(entries); i++ {
		if cfg.Compare(entries[i-1].key, entries[i].key) >= 0 {
			return nil, fmt.Errorf("%w: bulk load input not strictly ascending at index %d",
				ErrInvariantViolation, i)
		}
	}
	caps := capacities(len(entries), cfg.UpperBound())
	height := len(caps)
	tracer().Debugf("btree: bulk loading %d entries, lower bound %d, height %d",
		len(entries), cfg.LowerBound, height)
	return build(entries, height, caps), nil
}

// capacities returns the maximum number of entries a subtree of height
// h = 1, 2, … can hold, up to the first height able to hold n entries.
// A subtree of height h holds at most (upper+1)^h - 1 entries.
func capacities(n, upper int) []int {
	caps := []int{upper}
	for caps[len(caps)-1] < n {
		last := caps[len(caps)-1]
		if last+1 > (math.MaxInt-upper)/(upper+1) {
			caps = append(caps, math.MaxInt)
			break
		}
		caps = append(caps, (last+1)*(upper+1)-1)
	}
	return caps
}

// build creates a subtree of the given height holding exactly entries.
// caps[h-1] is the capacity of a subtree of height h.
func build[K, V any](entries []LeafEntry[K, V], height int, caps []int) Node[K, V] {
	if height == 1 {
		leaf := make([]LeafEntry[K, V], len(entries))
		copy(leaf, entries)
		return NewLeaf(leaf...)
	}
	n := len(entries)
	childCap := caps[height-2]
	// smallest number of children c with c*childCap + (c-1) >= n
	children := (n + 1 + childCap) / (childCap + 1)
	assert(children >= 2, "bulk load: branch with fewer than 2 children")
	rest := n - (children - 1) // entries left for the children
	size, extra := rest/children, rest%children
	branchEntries := make([]BranchEntry[K, V], 0, children-1)
	pos := 0
	for i := range children {
		cnt := size
		if i < extra {
			cnt++
		}
		child := build(entries[pos:pos+cnt], height-1, caps)
		pos += cnt
		if i == children-1 {
			assert(pos == n, "bulk load: entries not fully distributed")
			branch, err := NewBranch(branchEntries, child)
			assert(err == nil, "bulk load: cannot create branch")
			return branch
		}
		sep := entries[pos]
		branchEntries = append(branchEntries, NewBranchEntry(child, sep.key, sep.value))
		pos++
	}
	panic("bulk load: unreachable")
}
