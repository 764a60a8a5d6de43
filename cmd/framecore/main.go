// Command framecore runs the incremental terminal renderer demo and its
// offscreen benchmark.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	g := &globals{}
	if err := g.execute(context.Background(), newRootCmd(g)); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
