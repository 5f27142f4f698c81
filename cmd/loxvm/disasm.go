package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"loxvm/internal/bytecode"
	"loxvm/internal/compiler"
	"loxvm/internal/diag"
	"loxvm/internal/gc"
	"loxvm/internal/object"
	"loxvm/internal/source"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <path>",
	Short: "Compile a Lox file and print its disassembled bytecode",
	Args:  cobra.ExactArgs(1),
	RunE:  disasmFile,
}

func disasmFile(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "loxvm: %v\n", err)
		os.Exit(exitFileError)
	}

	collector := gc.New()
	collector.SetRoots(noRoots{})
	bag := diag.NewBag(64)
	fn, ok := compiler.Compile(fs.Get(id), collector, diag.BagReporter{Bag: bag})
	if !ok {
		bag.Sort()
		diag.RenderCompileErrors(cmd.ErrOrStderr(), fs, bag.Items())
		os.Exit(exitCompileError)
	}

	out := cmd.OutOrStdout()
	disasmFunction(out, fn)
	return nil
}

// disasmFunction recursively disassembles fn and every function constant
// in its pool, matching the way a closure's nested functions are only
// otherwise visible as opaque constant-pool entries.
func disasmFunction(out io.Writer, fn *object.Function) {
	name := "<script>"
	if fn.Name != nil {
		name = fn.Name.Chars
	}
	bytecode.Disassemble(out, &fn.Chunk, name)
	for _, c := range fn.Chunk.Constants {
		if nested, ok := c.Obj.(*object.Function); ok {
			fmt.Fprintln(out)
			disasmFunction(out, nested)
		}
	}
}
