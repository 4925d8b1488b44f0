/*
Package ordtree is an in-memory ordered key-value container backed by a
multi-way balanced search tree (a B-tree).

A BTree maps totally ordered keys to values and answers exact-key lookups.
Entries are distributed over leaf nodes and branch nodes: every entry of a
branch carries a left subtree of smaller keys, and every branch has one
rightmost subtree for keys greater than all of its entries. A lookup is a
single read-only descent from the root to a leaf.

Trees are built once and never restructure afterwards:

	t, err := ordtree.New(1, "taco", 2)     // single-entry tree, lower bound 2
	v, ok := t.Get(1)                       // "taco", true

Larger trees are created with a Builder, which bulk-loads key/value pairs
into a balanced tree honoring the configured lower and upper bounds:

	b := ordtree.NewBuilder[string, int](btree.OrderedConfig[string](2))
	b.Add("b", 2)
	b.Add("a", 1)
	t, err := b.Tree()

Hand-made node structures (see package btree) may be wrapped with Assemble,
which validates their ordering invariants.

Trees are immutable and therefore safe for concurrent readers.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package ordtree

import (
	"github.com/npillmayer/ordtree/btree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// TreeError is an error type for the ordtree module
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrBuilderCompleted signals that a builder has already completed a tree and
// it's illegal to further add entries.
const ErrBuilderCompleted = TreeError("forbidden to add entries; tree has been completed")

// ErrDuplicateKey is flagged when a builder receives the same key twice.
const ErrDuplicateKey = TreeError("duplicate key")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = TreeError("illegal arguments")

// ErrInvalidConfiguration is flagged for unusable tree configurations, most
// notably a lower bound below 1.
var ErrInvalidConfiguration = btree.ErrInvalidConfig

// ErrInvariantViolation is flagged for node structures breaking the ordering
// or shape invariants of a B-tree.
var ErrInvariantViolation = btree.ErrInvariantViolation
