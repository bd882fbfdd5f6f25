package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "golox",
	Short: "A tree-walking interpreter for Lox",
	Long: `golox is a Go implementation of Lox, the small dynamically-typed
scripting language from Crafting Interpreters: first-class functions,
lexical closures, classes, instances, and methods.

Running golox with no subcommand, or "golox run" with no file, starts an
interactive prompt.`,
	Version:      Version,
	SilenceUsage: true,
	RunE: func(c *cobra.Command, args []string) error {
		return runScript(c, args)
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitCode); ok {
			return int(code)
		}
		rootCmd.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

// exitCode lets a RunE return a specific process exit code (spec.md §6)
// without cobra printing it as a generic error.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
