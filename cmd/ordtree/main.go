/*
Command ordtree exercises ordered B-trees from the command line.

	ordtree demo                     build a one-entry tree and look up keys
	ordtree get  pairs.txt <key>     load a key/value file, look up a key
	ordtree dump pairs.txt           print the node structure
	ordtree dot  pairs.txt           print the node structure in Graphviz DOT format
	ordtree html pairs.txt           print the node structure as HTML

Key/value files hold one `key = value` pair per line (see package kvfile).
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing ordtree: %v\n", err)
		os.Exit(1)
	}
}
