package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/hisdash/internal/db"
	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := cmd.Context()

	if cfg.DSN == "" {
		fatal(log, exitcode.UsageError, nil, "--dsn or DATABASE_URL is required")
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		fatal(log, exitcode.DBConnError, err, "database connection failed")
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		fatal(log, exitcode.CopyError, err, "migration failed")
	}

	log.Info().Msg("all migrations applied successfully")
	return nil
}
