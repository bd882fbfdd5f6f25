package cmd

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/loxscript/golox/internal/driver"
)

var (
	promptColor = color.New(color.FgCyan)
	bannerColor = color.New(color.FgGreen)
)

const banner = "golox — a Lox interpreter (Ctrl-D to exit)"

// runPrompt drives the interactive REPL. One Driver (and therefore one
// Interpreter, one global environment, and one locals side-table) is kept
// alive across every line, so variables and functions defined on one line
// are visible on the next (spec.md §3 Lifecycles). Only the syntax-error
// flag is reset between lines; a runtime error still prints but does not
// end the session (spec.md §6).
func runPrompt(d *driver.Driver) {
	bannerColor.Println(banner)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptColor.Sprint("> "),
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		fmt.Println(banner)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			return
		}

		d.Run(line)
		d.Reporter.ResetSyntaxError()
	}
}
