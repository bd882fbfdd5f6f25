// Package driver orchestrates the four pipeline stages — scan, parse,
// resolve, evaluate — against a single Reporter and Interpreter, and maps
// their outcome to the exit-code contract of spec.md §6.
package driver

import (
	"io"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/interp"
	"github.com/loxscript/golox/internal/lexer"
	"github.com/loxscript/golox/internal/loxerrors"
	"github.com/loxscript/golox/internal/parser"
	"github.com/loxscript/golox/internal/resolver"
)

// Exit codes per spec.md §6.
const (
	ExitSuccess   = 0
	ExitUsage     = 64
	ExitDataError = 65 // syntax/resolution error during a file run
	ExitSoftware  = 70 // runtime error during a file run
)

// Driver ties one Interpreter (and therefore one global environment and
// locals side-table) to one ConsoleReporter across a run. Reusing a Driver
// across multiple Run calls is how the REPL keeps session state alive
// while resetting only the syntax-error flag between lines (spec.md §3,
// §6).
type Driver struct {
	Interp   *interp.Interpreter
	Reporter *loxerrors.ConsoleReporter

	// DumpAST, when set, receives the parsed statements after resolution
	// has succeeded and before evaluation begins.
	DumpAST func(statements []ast.Statement)
}

// New creates a Driver with a fresh Interpreter writing to out and a
// ConsoleReporter using useColor for its output.
func New(out io.Writer, useColor bool) *Driver {
	return &Driver{
		Interp:   interp.New(out),
		Reporter: loxerrors.NewConsoleReporter(useColor),
	}
}

// Run scans, parses, resolves, and evaluates source. It returns false if
// the syntax/resolution stage reported any error (the caller should not
// treat output as trustworthy and, in file mode, should exit with
// ExitDataError); evaluation is skipped entirely in that case.
func (d *Driver) Run(source string) bool {
	l := lexer.New(source, d.Reporter)
	tokens := l.ScanTokens()

	p := parser.New(tokens, d.Reporter)
	statements := p.ParseProgram()

	if d.Reporter.HadError {
		return false
	}

	res := resolver.New(d.Interp, d.Reporter)
	res.Resolve(statements)

	if d.Reporter.HadError {
		return false
	}

	if d.DumpAST != nil {
		d.DumpAST(statements)
	}

	d.Interp.Interpret(statements, d.Reporter)
	return true
}
