package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flatexp/pkg/registry"
	"github.com/aretw0/flatexp/pkg/script"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the script operations and number parsers",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Operations:")
		for _, op := range script.Ops() {
			fmt.Fprintf(out, "  %s\n", op)
		}
		fmt.Fprintln(out, "Parsers:")
		for _, name := range registry.Default().Names() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		fmt.Fprintln(out, "  <name>[min,max]")
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)
}
