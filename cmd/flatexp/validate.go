package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flatexp/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <script>",
	Short: "Check that a script builds a valid experiment set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := app.Validate(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Success("script is valid"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
