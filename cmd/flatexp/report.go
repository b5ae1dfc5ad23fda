package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/flatexp/internal/presentation/tui"
)

var reportCmd = &cobra.Command{
	Use:   "report <script|snapshot-id>",
	Short: "Print a summary of an experiment set",
	Long: `Summarizes the experiment set built by a script, or a published snapshot
when no file with that name exists. The markdown is rendered for the terminal
unless --raw is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		if raw, _ := cmd.Flags().GetBool("raw"); !raw {
			render, err := tui.NewRenderer(os.Stdout)
			if err != nil {
				return err
			}
			app.Render = render
		}
		return app.Report(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
}
