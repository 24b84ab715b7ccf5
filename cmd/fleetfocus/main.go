// Command fleetfocus is the rental fleet dashboard CLI.
package main

import (
	"os"

	"github.com/fleetfocus/fleetfocus/internal/cli"
	"github.com/fleetfocus/fleetfocus/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to an exit code. Cobra
// already printed the error by the time Execute returns.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
