package cmd

import (
	"errors"

	"note-taking-api/db"

	"github.com/spf13/cobra"
)

var rollbackSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Long:  `Apply all pending schema migrations, or roll back the given number of steps with --down.`,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().IntVar(&rollbackSteps, "down", 0, "number of migrations to roll back instead of migrating up")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := readConfig(false)
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return errors.New("DSN is required")
	}

	if rollbackSteps > 0 {
		return db.Rollback(cfg.Database.DSN, rollbackSteps)
	}
	return db.Migrate(cfg.Database.DSN)
}
