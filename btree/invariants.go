package btree

import "fmt"

// CheckOrder validates the ordering and shape invariants of the subtree
// rooted at n:
//
//   - keys within every node are strictly ascending,
//   - all keys in a branch entry's left subtree lie between the previous
//     entry's key and the entry's key,
//   - all keys in a branch's rightmost child exceed its last entry key,
//   - all leaves are at the same depth.
//
// It returns the height of n (1 for a leaf).
func CheckOrder[K, V any](n Node[K, V], compare Comparator[K]) (int, error) {
	if compare == nil {
		return 0, fmt.Errorf("%w: comparator is required", ErrInvalidConfig)
	}
	c := orderChecker[K, V]{compare: compare}
	return c.check(n, keyRange[K]{})
}

type keyRange[K any] struct {
	lo, hi       K
	hasLo, hasHi bool
}

type orderChecker[K, V any] struct {
	compare Comparator[K]
}

func (c orderChecker[K, V]) inRange(key K, r keyRange[K]) bool {
	if r.hasLo && c.compare(key, r.lo) <= 0 {
		return false
	}
	if r.hasHi && c.compare(key, r.hi) >= 0 {
		return false
	}
	return true
}

func (c orderChecker[K, V]) check(n Node[K, V], r keyRange[K]) (int, error) {
	switch node := n.(type) {
	case nil:
		return 0, fmt.Errorf("%w: nil node", ErrInvariantViolation)
	case *Leaf[K, V]:
		if node == nil {
			return 0, fmt.Errorf("%w: nil leaf", ErrInvariantViolation)
		}
		if len(node.entries) == 0 {
			return 0, fmt.Errorf("%w: empty leaf", ErrInvariantViolation)
		}
		for i, e := range node.entries {
			if i > 0 && c.compare(node.entries[i-1].key, e.key) >= 0 {
				return 0, fmt.Errorf("%w: leaf keys not ascending at index %d", ErrInvariantViolation, i)
			}
			if !c.inRange(e.key, r) {
				return 0, fmt.Errorf("%w: leaf key %v outside of parent range", ErrInvariantViolation, e.key)
			}
		}
		return 1, nil
	case *Branch[K, V]:
		if node == nil {
			return 0, fmt.Errorf("%w: nil branch", ErrInvariantViolation)
		}
		if len(node.entries) == 0 {
			return 0, fmt.Errorf("%w: branch without entries", ErrInvariantViolation)
		}
		var height int
		sub := keyRange[K]{lo: r.lo, hasLo: r.hasLo}
		for i, e := range node.entries {
			if i > 0 && c.compare(node.entries[i-1].key, e.key) >= 0 {
				return 0, fmt.Errorf("%w: branch keys not ascending at index %d", ErrInvariantViolation, i)
			}
			if !c.inRange(e.key, r) {
				return 0, fmt.Errorf("%w: branch key %v outside of parent range", ErrInvariantViolation, e.key)
			}
			sub.hi, sub.hasHi = e.key, true
			h, err := c.check(e.left, sub)
			if err != nil {
				return 0, err
			}
			if i == 0 {
				height = h
			} else if h != height {
				return 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvariantViolation)
			}
			sub.lo, sub.hasLo = e.key, true
		}
		sub.hi, sub.hasHi = r.hi, r.hasHi
		h, err := c.check(node.rightmost, sub)
		if err != nil {
			return 0, err
		}
		if h != height {
			return 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvariantViolation)
		}
		return height + 1, nil
	}
	panic("btree: unknown node type")
}

// CheckOccupancy validates that every non-root node of the subtree rooted
// at root holds between cfg.LowerBound and cfg.UpperBound() entries. The root
// itself may hold fewer entries than the lower bound, but at least one.
func CheckOccupancy[K, V any](root Node[K, V], cfg Config[K]) error {
	if cfg.LowerBound < 1 {
		return fmt.Errorf("%w: lower bound must be >= 1, is %d", ErrInvalidConfig, cfg.LowerBound)
	}
	return Walk(root, func(n Node[K, V], depth int) error {
		cnt := n.Len()
		if cnt > cfg.UpperBound() {
			return fmt.Errorf("%w: node at depth %d holds %d entries, upper bound is %d",
				ErrInvariantViolation, depth, cnt, cfg.UpperBound())
		}
		if depth > 0 && cnt < cfg.LowerBound {
			return fmt.Errorf("%w: node at depth %d holds %d entries, lower bound is %d",
				ErrInvariantViolation, depth, cnt, cfg.LowerBound)
		}
		if cnt == 0 {
			return fmt.Errorf("%w: empty root", ErrInvariantViolation)
		}
		return nil
	})
}
