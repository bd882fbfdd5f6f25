// Command golox runs the Lox tree-walking interpreter: golox run [file]
// executes a script, and golox with no subcommand (or golox run with no
// path) drops into an interactive prompt.
package main

import (
	"os"

	"github.com/loxscript/golox/cmd/golox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
