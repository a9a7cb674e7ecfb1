// Package main implements the forgescope CLI: project discovery and
// filtering against a code-hosting platform, rendered as a listing or
// a myrepos-style checkout configuration.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fyrsmithlabs/forgescope/internal/config"
	"github.com/fyrsmithlabs/forgescope/internal/forge"
	githubforge "github.com/fyrsmithlabs/forgescope/internal/forge/github"
	"github.com/fyrsmithlabs/forgescope/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "forgescope",
	Short: "Resolve and render a scope of forge projects",
	Long: `forgescope resolves a scope of code-hosting-platform projects matching
a group/user selector and an optional contributor filter, then renders
the scope as a flat listing or a myrepos-style checkout configuration.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/forgescope/config.yaml)")
	rootCmd.PersistentFlags().String("token", "", "forge API token")
	rootCmd.PersistentFlags().String("base-url", "", "forge API base URL (self-hosted instances)")
	rootCmd.PersistentFlags().String("group", "", "group/user selector (empty means every visible project)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(mrconfigCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(syncCmd)
}

// app bundles what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	client forge.Client
}

// setup loads config, builds the logger and the API client, and
// stamps the context with a run ID for log correlation.
func setup(cmd *cobra.Command) (context.Context, *app, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logCfg := logging.NewDefaultConfig()
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	ctx := logging.WithRunID(cmd.Context(), uuid.NewString())

	client, err := githubforge.New(ctx, githubforge.Options{
		Token:             cfg.Forge.Token.Value(),
		BaseURL:           cfg.Forge.BaseURL,
		RequestsPerSecond: cfg.Forge.RequestsPerSecond,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating forge client: %w", err)
	}

	return ctx, &app{cfg: cfg, logger: logger, client: client}, nil
}
