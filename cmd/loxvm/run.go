package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loxvm/internal/source"
)

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Compile and run a Lox source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

func runFile(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "loxvm: %v\n", err)
		os.Exit(exitFileError)
	}

	v := newVM(cmd)
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		v.Trace = true
	}

	result := v.Interpret(fs, id)

	if stats, _ := cmd.Flags().GetBool("gc-stats"); stats {
		s := v.GC().Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "gc: %d collections, %d bytes live, next at %d, %d objects\n",
			s.Collections, s.BytesAllocated, s.NextGC, s.LiveObjects)
	}

	os.Exit(exitCodeFor(result))
	return nil
}
