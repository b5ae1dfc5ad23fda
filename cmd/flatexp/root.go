package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/flatexp/internal/cli"
	"github.com/aretw0/flatexp/internal/config"
	"github.com/aretw0/flatexp/internal/logging"
	"github.com/aretw0/flatexp/internal/presentation/tui"
)

var rootCmd = &cobra.Command{
	Use:   "flatexp",
	Short: "flatexp builds experiment-data sets from flat operation scripts",
	Long: `flatexp drives a flat builder with YAML step scripts and turns them into
hierarchical experiment sets (dimensions, instances, experiments, run sets, runs).
Results can be printed, published to a snapshot store, reported, graphed and served.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Failure(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("backend", "", "Snapshot store backend: memory, file or redis")
}

// newApp loads the configuration and applies the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Store.Backend = backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)
	slog.SetDefault(logger)

	return cli.NewApp(cfg, logger, cmd.OutOrStdout()), nil
}
