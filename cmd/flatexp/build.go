package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/flatexp/internal/cli"
)

var buildCmd = &cobra.Command{
	Use:   "build <script>",
	Short: "Run a script and print or publish the experiment set",
	Long: `Runs the steps of a YAML script against a fresh builder. The resulting
experiment set is printed as YAML (or JSON), or published to the snapshot store
with --save. Without --id a random ID is generated and printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		opts := cli.BuildOptions{Script: args[0]}
		opts.Save, _ = cmd.Flags().GetBool("save")
		opts.ID, _ = cmd.Flags().GetString("id")
		opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")
		opts.Format, _ = cmd.Flags().GetString("format")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return app.Build(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Bool("save", false, "Publish the result to the snapshot store")
	buildCmd.Flags().String("id", "", "Snapshot ID used with --save")
	buildCmd.Flags().Bool("overwrite", false, "Replace an existing snapshot with the same ID")
	buildCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
}
