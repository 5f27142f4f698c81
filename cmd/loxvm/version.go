package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loxvm/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show loxvm build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "loxvm %s\n", version.Version)
		return nil
	},
}
