package main

import (
	"bufio"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"loxvm/internal/replui"
	"loxvm/internal/source"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox session",
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

// runREPL picks the interaction style based on whether stdin is a
// terminal: an interactive TTY gets the Bubble Tea line editor, anything
// else (pipes, redirected files, tests) gets the spec's bare "print '> ',
// read a line, interpret, repeat until EOF" loop.
func runREPL(cmd *cobra.Command, args []string) error {
	v := newVM(cmd)
	useColor := colorEnabled(cmd)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		program := tea.NewProgram(replui.New(v, useColor))
		_, err := program.Run()
		return err
	}

	fs := source.NewFileSet()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return nil
		}
		id := fs.AddVirtual("<repl>", []byte(scanner.Text()))
		v.Interpret(fs, id)
	}
}
