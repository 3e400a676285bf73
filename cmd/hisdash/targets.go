package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/logging"
	"github.com/gyeh/hisdash/internal/targets"
)

var (
	targetDepartment string
	targetRevenue    float64
	targetPatients   float64
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show or edit revenue and patient targets",
}

var targetsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the targets file",
	RunE:  runTargetsShow,
}

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the facility or a department's targets",
	RunE:  runTargetsSet,
}

func init() {
	targetsCmd.PersistentFlags().StringVar(&cfg.TargetsPath, "targets", "", "Targets YAML file (default targets.yaml)")

	f := targetsSetCmd.Flags()
	f.StringVar(&targetDepartment, "department", "", "Department name (facility-wide when empty)")
	f.Float64Var(&targetRevenue, "revenue", 0, "Planned revenue in dong")
	f.Float64Var(&targetPatients, "patients", 0, "Planned patient count")

	targetsCmd.AddCommand(targetsShowCmd, targetsSetCmd)
	rootCmd.AddCommand(targetsCmd)
}

func runTargetsShow(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	plan, err := targets.Load(cfg.TargetsPath)
	if err != nil {
		fatal(log, exitcode.ValidationError, err, "load targets")
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(&plan); err != nil {
		fatal(log, exitcode.OutputError, err, "print targets")
	}
	return enc.Close()
}

func runTargetsSet(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	var revenue, patients *float64
	if cmd.Flags().Changed("revenue") {
		revenue = &targetRevenue
	}
	if cmd.Flags().Changed("patients") {
		patients = &targetPatients
	}
	if revenue == nil && patients == nil {
		fatal(log, exitcode.UsageError, nil, "nothing to set: pass --revenue and/or --patients")
	}

	plan, err := targets.Load(cfg.TargetsPath)
	if err != nil {
		fatal(log, exitcode.ValidationError, err, "load targets")
	}
	if err := plan.Set(targetDepartment, revenue, patients); err != nil {
		fatal(log, exitcode.UsageError, err, "invalid target")
	}
	if err := targets.Save(cfg.TargetsPath, plan); err != nil {
		fatal(log, exitcode.OutputError, err, "save targets")
	}

	scope := "facility"
	if targetDepartment != "" {
		scope = targetDepartment
	}
	fmt.Printf("Targets updated for %s in %s\n", scope, cfg.TargetsPath)
	return nil
}
