// Package commands implements the longrun command line.
package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/cmd/longrun/provider"
	"github.com/ncobase/longrun/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "longrun",
		Short:         "Run and track long-running asynchronous timed jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: search /etc/longrun, $HOME/.longrun, .)")

	load := func() (*config.Config, error) {
		return config.Init(configPath)
	}

	rootCmd.AddCommand(
		newServeCommand(load),
		newRunCommand(load),
		newStatusCommand(load),
		newResultsCommand(load),
		newDescribeCommand(load),
		newVersionCommand(),
	)

	return rootCmd
}

type configLoader func() (*config.Config, error)

// withApp loads the configuration, builds the app, runs fn and releases
// everything afterwards.
func withApp(load configLoader, fn func(ctx context.Context, app *provider.App) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	app, cleanup, err := provider.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer cleanup()
	return fn(context.Background(), app)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseJobID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid job id %q: %w", arg, err)
	}
	return id, nil
}
