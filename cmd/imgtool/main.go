// Command imgtool applies one image operation per invocation, for use in
// scripts and shell pipelines.
package main

import (
	"fmt"
	"os"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "imgtool: %v\n", err)
		os.Exit(1)
	}
}
