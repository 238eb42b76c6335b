// Command reqlint lints requirements manifests and .editorconfig files.
package main

import (
	"os"

	"github.com/reqlint/reqlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
