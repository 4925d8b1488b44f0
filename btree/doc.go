/*
Package btree provides the node model and lookup algorithm of an in-memory,
ordered key-value B-tree.

The package is intentionally small. Nodes are either leaves (a sorted run of
key/value entries) or branches (a sorted run of entries, each owning a left
subtree of smaller keys, plus one rightmost subtree of larger keys). Lookup
is a single read-only descent from the root to a leaf.

Current status:
  - distinct `Leaf` and `Branch` representations behind a sealed `Node`,
  - linear and binary leaf search (`SearchMode`),
  - ordering and occupancy invariant checks (`CheckOrder`, `CheckOccupancy`),
  - pre-order walking and in-order iteration,
  - bottom-up bulk load of sorted entries into a balanced tree (`BulkLoad`).

Trees do not restructure after construction. There is no insert, delete,
split or merge; `LowerBound` and `UpperBound` are honored by `BulkLoad` and
verified by `CheckOccupancy`.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'ordtree'
func tracer() tracing.Trace {
	return tracing.Select("ordtree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
