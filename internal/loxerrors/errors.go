// Package loxerrors formats and tracks the two disjoint error taxonomies of
// the interpreter: syntax/resolution errors (reported by line, accumulated
// into a process-level flag) and runtime errors (carrying the offending
// token, unwound to the top-level statement boundary). The split mirrors
// the teacher's internal/errors package, adapted to Lox's simpler,
// single-pass error model.
package loxerrors

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/loxscript/golox/pkg/token"
)

// Reporter receives diagnostics from the scanner, parser, and resolver.
// Decoupling the pipeline from a concrete sink lets the REPL and the file
// runner share the same scanning/parsing/resolving code while presenting
// errors differently (colored interactive output vs. plain file output).
type Reporter interface {
	// Report records a syntax/resolution error at the given line. where is
	// either "" (scanner errors), " at end", or " at '<lexeme>'".
	Report(line int, where, message string)
}

// RuntimeError carries the offending token (for its line) and a fixed
// message. RuntimeErrors unwind the evaluator's call stack and are caught
// at the top-level statement boundary.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func NewRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// ConsoleReporter prints diagnostics to stderr in the
// "[line N] Error<where>: <message>" format required by spec.md §6, and
// tracks whether any syntax/resolution error has occurred so the driver can
// suppress later pipeline stages and select the right exit code.
//
// It also exposes RuntimeError handling via Runtime, printed as
// "<message>\n[line N]" per spec.md §6.
type ConsoleReporter struct {
	Color           bool
	HadError        bool
	HadRuntimeError bool
}

func NewConsoleReporter(useColor bool) *ConsoleReporter {
	return &ConsoleReporter{Color: useColor}
}

func (r *ConsoleReporter) Report(line int, where, message string) {
	r.HadError = true
	text := fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
	if r.Color {
		color.New(color.FgRed).Fprintln(os.Stderr, text)
		return
	}
	fmt.Fprintln(os.Stderr, text)
}

// Runtime reports a RuntimeError and sets HadRuntimeError. It is not reset
// between REPL lines: a runtime error mid-session still prints, but the
// session continues (spec.md §6).
func (r *ConsoleReporter) Runtime(err *RuntimeError) {
	r.HadRuntimeError = true
	text := fmt.Sprintf("%s\n[line %d]", err.Message, err.Token.Line)
	if r.Color {
		color.New(color.FgRed).Fprintln(os.Stderr, text)
		return
	}
	fmt.Fprintln(os.Stderr, text)
}

// ResetSyntaxError clears HadError between REPL lines so one bad line does
// not poison the rest of the session (spec.md §6). HadRuntimeError is never
// reset by this call.
func (r *ConsoleReporter) ResetSyntaxError() {
	r.HadError = false
}
