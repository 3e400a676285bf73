package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/logging"
	"github.com/gyeh/hisdash/internal/parquetio"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write the normalized records to a Parquet snapshot",
	RunE:  runSnapshot,
}

func init() {
	addSourceFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&cfg.OutPath, "out", "", "Output Parquet path (required)")
	_ = snapshotCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		fatal(log, exitcode.UsageError, err, "config validation failed")
	}

	res := loadRecords(cmd.Context(), log, currentTime())
	n, err := parquetio.WriteSnapshot(cfg.OutPath, res.Records)
	if err != nil {
		fatal(log, exitcode.OutputError, err, "write snapshot")
	}

	fmt.Printf("Snapshot written: %s (%d records)\n", cfg.OutPath, n)
	return nil
}
