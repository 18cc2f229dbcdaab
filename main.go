// Punchcard - a command-line batch-entry front-end for the Clockify API.
package main

import (
	"os"

	"github.com/punchcard-cli/punchcard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
