package cmd

import (
	"context"
	"fmt"
	"os"

	"note-taking-api/config"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "notes-api",
	Short: "Note-taking REST API",
	Long: `A REST API for owner-scoped notes grouped into categories.

Configuration comes from the environment (and a .env file), optionally
layered over a YAML file given with --config or NOTES_CONFIG.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func readConfig(validate bool) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if validate {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.Read(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg.Logging, os.Stderr)
	return cfg, nil
}
