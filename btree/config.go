package btree

import (
	"cmp"
	"fmt"
)

// DefaultLowerBound is the lower occupancy bound used when a configuration
// leaves it unset in contexts which allow defaults (builders, loaders).
const DefaultLowerBound = 2

// Comparator is a three-way comparison over keys. It returns a negative
// number if a < b, zero if a == b and a positive number if a > b.
//
// Comparators must implement a total order.
type Comparator[K any] func(a, b K) int

// SearchMode selects how leaves are searched during lookup.
type SearchMode uint8

const (
	// LinearScan searches leaf entries front to back.
	LinearScan SearchMode = iota
	// BinarySearch bisects the (sorted) leaf entries.
	BinarySearch
)

func (m SearchMode) String() string {
	switch m {
	case LinearScan:
		return "linear"
	case BinarySearch:
		return "binary"
	}
	return fmt.Sprintf("SearchMode(%d)", uint8(m))
}

// Config configures a B-tree.
type Config[K any] struct {
	// LowerBound is the minimum number of entries per non-root node. Must be >= 1.
	LowerBound int
	// Compare orders keys.
	Compare Comparator[K]
	// Search selects the leaf search strategy.
	Search SearchMode
}

// OrderedConfig returns a configuration for naturally ordered keys.
func OrderedConfig[K cmp.Ordered](lowerBound int) Config[K] {
	return Config[K]{
		LowerBound: lowerBound,
		Compare:    cmp.Compare[K],
	}
}

// UpperBound is the maximum number of entries per node, twice the lower bound.
func (cfg Config[K]) UpperBound() int {
	return 2 * cfg.LowerBound
}

func (cfg Config[K]) normalized() Config[K] {
	if cfg.Search > BinarySearch {
		cfg.Search = LinearScan
	}
	return cfg
}

// Validate checks a configuration and returns an error wrapping
// ErrInvalidConfig if it is unusable.
func (cfg Config[K]) Validate() error {
	cfg = cfg.normalized()
	if cfg.LowerBound < 1 {
		return fmt.Errorf("%w: lower bound must be >= 1, is %d", ErrInvalidConfig, cfg.LowerBound)
	}
	if cfg.Compare == nil {
		return fmt.Errorf("%w: comparator is required", ErrInvalidConfig)
	}
	return nil
}
