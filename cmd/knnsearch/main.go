// Command knnsearch builds random k-nearest-neighbour graphs and runs greedy
// best-first and A* searches over them.
//
// Usage:
//
//	knnsearch [flags] <command>
//
// Commands:
//
//	build   - Build a graph and print its statistics, optionally as GeoJSON
//	search  - Build a graph and search it from the farthest point to a target
//	serve   - Build a graph and serve the search API over HTTP
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
