package main

import (
	"os"

	"github.com/spf13/cobra"

	"loxvm/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "loxvm",
	Short: "A bytecode compiler and VM for Lox",
	Long:  `loxvm compiles and runs Lox programs through a single-pass bytecode compiler and a stack-based virtual machine.`,
	RunE:  runREPL,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("gc-stress", false, "run a collection on every allocation")
	rootCmd.PersistentFlags().Bool("gc-log", false, "log each garbage collection to stderr")
	runCmd.Flags().Bool("gc-stats", false, "print collector stats after the program exits")
	runCmd.Flags().Bool("trace", false, "disassemble each instruction to stderr before executing it")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
