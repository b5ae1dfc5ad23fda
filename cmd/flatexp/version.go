package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flatexp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flatexp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "flatexp version %s\n", flatexp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
