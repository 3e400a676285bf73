package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyeh/hisdash/internal/db"
	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/logging"
	"github.com/gyeh/hisdash/internal/report"
)

var (
	exportMigrate bool
	exportVerify  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "COPY canonical records into Postgres under a new export batch",
	RunE:  runExport,
}

func init() {
	addSourceFlags(exportCmd)
	f := exportCmd.Flags()
	f.BoolVar(&exportMigrate, "migrate", false, "Apply migrations before exporting")
	f.BoolVar(&exportVerify, "verify", false, "Print per-department totals read back from the database")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := cmd.Context()

	if err := cfg.ValidateWithDSN(); err != nil {
		fatal(log, exitcode.UsageError, err, "config validation failed")
	}

	res := loadRecords(ctx, log, currentTime())

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		fatal(log, exitcode.DBConnError, err, "database connection failed")
	}
	defer pool.Close()

	if exportMigrate {
		if err := db.ApplyMigrations(ctx, pool, log); err != nil {
			pool.Close()
			fatal(log, exitcode.CopyError, err, "migration failed")
		}
	}

	summary, err := db.Export(ctx, pool, log, res.Records, res.Summary.Sources)
	if err != nil {
		pool.Close()
		var ee *db.ExportError
		if errors.As(err, &ee) {
			fatal(log, exitcode.CopyError, ee.Err, "export failed in phase "+ee.Phase)
		}
		fatal(log, exitcode.CopyError, err, "export failed")
	}
	met.RecordExport(summary)

	fmt.Printf("Export complete: batch %s, %d rows copied (%.1fs)\n",
		summary.ExportBatchID, summary.RowsCopied, summary.Duration.Seconds())

	if exportVerify {
		totals, err := db.DepartmentTotals(ctx, pool)
		if err != nil {
			pool.Close()
			fatal(log, exitcode.CopyError, err, "verify failed")
		}
		for _, t := range totals {
			fmt.Printf("  %-30s %8d rows %6d patients %20s\n",
				t.Department, t.Records, t.Patients, report.Money(t.TotalCost))
		}
	}
	return nil
}
