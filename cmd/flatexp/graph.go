package main

import (
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <script|snapshot-id>",
	Short: "Export the experiment set hierarchy as a Mermaid diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		highlight, _ := cmd.Flags().GetStringSlice("highlight")
		return app.Graph(cmd.Context(), args[0], highlight)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("highlight", nil, "Experiments to highlight")
}
