package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"loxvm/internal/config"
	"loxvm/internal/vm"
)

const (
	exitOK           = 0
	exitUsageError   = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitFileError    = 74
)

// loadConfig reads .loxvmrc from the current directory, falling back to
// config.Default when it does not exist. A parse error is reported on
// stderr and config.Default is used in its place.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.LoadOptional(".loxvmrc")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "loxvm: .loxvmrc: %v\n", err)
		return config.Default()
	}
	return cfg
}

// newVM builds a VM wired up from .loxvmrc and the root command's
// persistent GC flags, with flags taking precedence over the file.
func newVM(cmd *cobra.Command) *vm.VM {
	cfg := loadConfig(cmd)

	v := vm.New()
	v.GC().SetInitialThreshold(cfg.GC.HeapStartBytes)
	v.MaxDiagnostics = cfg.Diagnostics.Max
	v.GC().Stress = cfg.GC.Stress

	if stress, _ := cmd.Flags().GetBool("gc-stress"); stress {
		v.GC().Stress = true
	}
	if logGC, _ := cmd.Flags().GetBool("gc-log"); logGC {
		v.GC().Log = true
		v.GC().Out = cmd.ErrOrStderr()
	}
	v.Stdout = cmd.OutOrStdout()
	v.Stderr = cmd.ErrOrStderr()
	return v
}

// colorEnabled resolves the effective --color setting: an explicit flag
// value wins, "auto" (the flag default) falls back to .loxvmrc's
// repl.color, then to whether stdout is a terminal.
func colorEnabled(cmd *cobra.Command) bool {
	flag, _ := cmd.Flags().GetString("color")
	if flag == "" {
		flag = "auto"
	}
	if flag == "auto" {
		flag = loadConfig(cmd).REPL.Color
	}
	switch flag {
	case "on":
		return true
	case "off":
		return false
	default:
		f, ok := cmd.OutOrStdout().(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

func exitCodeFor(r vm.Result) int {
	switch r {
	case vm.ResultOK:
		return exitOK
	case vm.ResultCompileError:
		return exitCompileError
	case vm.ResultRuntimeError:
		return exitRuntimeError
	default:
		return exitUsageError
	}
}
