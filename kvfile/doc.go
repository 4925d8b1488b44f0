/*
Package kvfile provides API helpers to load key/value text files as trees.

A key/value file holds one pair per line, key and value separated by the
first occurrence of a separator (default '='). Surrounding white space is
trimmed. Blank lines and lines starting with '#' are ignored:

	# tacos
	al pastor = pork, pineapple
	carnitas  = pork

Files are read by a bounded asynchronous prefetch pipeline: a reader
goroutine splits the file into fragments of lines while the loader parses
and stages them. Clients may subscribe to progress notices, which are
broadcast after every fragment. `Load` itself is synchronous and returns the
completed tree.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package kvfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ordtree'
func tracer() tracing.Trace {
	return tracing.Select("ordtree")
}
