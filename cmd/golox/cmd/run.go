package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/driver"
)

var (
	dumpAST bool
	trace   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox script, or start the interactive prompt with no file",
	Long: `Execute a Lox program from a file, or drop into an interactive
prompt when no file is given.

Examples:
  golox run script.lox
  golox run --dump-ast script.lox
  golox run`,
	Args: cobra.ArbitraryArgs,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	for _, fs := range []*cobra.Command{rootCmd, runCmd} {
		fs.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed statement tree before running")
		fs.Flags().BoolVar(&trace, "trace", false, "print a one-line execution trace before running")
	}
}

func runScript(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: golox [script]")
		return exitCode(driver.ExitUsage)
	}

	d := driver.New(os.Stdout, true)
	if dumpAST {
		d.DumpAST = func(statements []ast.Statement) {
			for _, s := range statements {
				fmt.Println(s.String())
			}
		}
	}

	if len(args) == 1 {
		return runFile(d, args[0])
	}

	runPrompt(d)
	return nil
}

func runFile(d *driver.Driver, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] running %s\n", path)
	}

	d.Run(string(content))

	if d.Reporter.HadError {
		return exitCode(driver.ExitDataError)
	}
	if d.Reporter.HadRuntimeError {
		return exitCode(driver.ExitSoftware)
	}
	return nil
}
