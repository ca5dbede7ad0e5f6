// Command chembal balances chemical equations.
package main

import (
	"os"

	"github.com/roach88/chembal/internal/cli"
)

func main() {
	os.Exit(cli.GetExitCode(cli.Execute(cli.NewRootCommand())))
}
