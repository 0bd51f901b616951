// Command featuretoggle resolves feature visibility from rule sets.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/featuretoggle/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "featuretoggle:", err)
		os.Exit(1)
	}
}
