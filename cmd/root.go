// Package cmd is the hyprevents command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dsrosen6/hyprevents/internal/config"
	"github.com/dsrosen6/hyprevents/internal/logging"
)

const version = "0.2.0"

var cfgFile string

// Run is the primary entry point of hyprevents.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv("DEBUG") == "true" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hyprevents",
		Short:         "Listen to Hyprland events and run hooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "specify a config file")

	root.AddCommand(
		newListenCmd(),
		newStateCmd(),
		newDispatchCmd(),
		newReloadCmd(),
		newStatusCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return root
}

// loadConfig reads and validates the config and sets up logging from it.
func loadConfig() (*config.Config, func(), error) {
	cfg, err := config.InitConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", cfg.Path(), err)
	}

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}
	slog.Debug("initiated config", "path", cfg.Path())

	return cfg, func() {
		if err := closer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
		}
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
