package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/logging"
	"github.com/gyeh/hisdash/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print dashboard views for the selected facets",
	RunE:  runReport,
}

func init() {
	addSourceFlags(reportCmd)
	addFacetFlags(reportCmd)
	f := reportCmd.Flags()
	f.StringVar(&cfg.Format, "format", "", "Output format: text or json")
	f.StringVar(&cfg.Trend, "trend", "", "Trend bucket: day or month")
	f.StringVar(&cfg.OutPath, "out", "", "Write the report to this file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := cmd.Context()

	if err := cfg.Validate(); err != nil {
		fatal(log, exitcode.UsageError, err, "config validation failed")
	}

	now := currentTime()
	res := loadRecords(ctx, log, now)
	views := dashboardState(log, res.Records, now).Views()

	var w io.Writer = os.Stdout
	if cfg.OutPath != "" {
		f, err := os.Create(cfg.OutPath)
		if err != nil {
			fatal(log, exitcode.OutputError, err, "create output file")
		}
		defer f.Close()
		w = f
	}
	if err := report.NewReporter(w).Write(cfg.Format, views); err != nil {
		fatal(log, exitcode.OutputError, err, "render report")
	}
	if cfg.OutPath != "" {
		fmt.Fprintf(os.Stderr, "Report written to %s (%d records in window)\n", cfg.OutPath, len(views.Filtered))
	}
	return nil
}
