// Command ssimulacra2 compares two images and reports a SSIMULACRA2
// quality score.
//
// Usage:
//
//	ssimulacra2 compare <reference> <distorted>
//	ssimulacra2 version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ssimulacra2: %v\n", err)
		os.Exit(1)
	}
}
