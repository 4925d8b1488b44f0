package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration, e.g. a lower
	// bound below 1 or a missing comparator.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrInvariantViolation signals a node structure which breaks ordering,
	// occupancy or shape invariants.
	ErrInvariantViolation = errors.New("btree: invariant violation")
)
