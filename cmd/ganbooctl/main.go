// Command ganbooctl is the operator CLI for the Ganboo relationship core.
package main

import (
	"fmt"
	"os"

	"ganboo/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
