// Command cardctl exposes the advisory core on the command line: profile
// extraction, merging, card scoring and reply formatting, all without a
// running server or completion provider.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
