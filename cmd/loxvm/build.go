package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"loxvm/internal/gc"
	"loxvm/internal/loxc"
	"loxvm/internal/source"
	"loxvm/internal/compiler"
	"loxvm/internal/diag"
)

var buildCmd = &cobra.Command{
	Use:   "build <path>...",
	Short: "Compile one or more Lox files to .loxc bytecode containers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  buildFiles,
}

// buildFiles compiles every argument independently and concurrently: each
// file gets its own FileSet and Collector, so there is no shared mutable
// state across goroutines and nothing inside a single VM ever runs
// concurrently with itself.
func buildFiles(cmd *cobra.Command, paths []string) error {
	var g errgroup.Group
	for _, path := range paths {
		path := path
		g.Go(func() error { return buildOne(cmd, path) })
	}
	if err := g.Wait(); err != nil {
		os.Exit(exitCompileError)
	}
	return nil
}

func buildOne(cmd *cobra.Command, path string) error {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "loxvm: %v\n", err)
		return err
	}

	collector := gc.New()
	collector.SetRoots(noRoots{})
	bag := diag.NewBag(64)
	fn, ok := compiler.Compile(fs.Get(id), collector, diag.BagReporter{Bag: bag})
	if !ok {
		bag.Sort()
		diag.RenderCompileErrors(cmd.ErrOrStderr(), fs, bag.Items())
		return fmt.Errorf("compile error in %s", path)
	}

	data, err := loxc.Marshal(fn)
	if err != nil {
		return err
	}

	outPath := strings.TrimSuffix(path, ".lox") + ".loxc"
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, outPath)
	}
	return nil
}

// noRoots is used for a build-only Collector: nothing outlives compilation
// except the returned Function, which the caller keeps reachable off the
// Go stack for the rest of buildOne, so no collection during the single
// compile pass can free anything still needed.
type noRoots struct{}

func (noRoots) MarkRoots(*gc.Collector) {}
