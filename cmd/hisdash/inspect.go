package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/hisdash/internal/dashboard"
	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/logging"
	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/normalize"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show header bindings and row counts without reporting (no writes)",
	RunE:  runInspect,
}

func init() {
	addSourceFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		fatal(log, exitcode.UsageError, err, "config validation failed")
	}

	res := loadRecords(cmd.Context(), log, currentTime())
	s := res.Summary

	fmt.Println("=== hisdash inspect ===")
	for _, info := range res.Sources {
		fmt.Printf("Source:     %s\n", info.Name)
		if info.Path != "" {
			fmt.Printf("  Path:     %s\n", info.Path)
			fmt.Printf("  SHA-256:  %s\n", info.SHA256)
			fmt.Printf("  Size:     %d bytes\n", info.Size)
		}
		bindings := res.Bindings[info.Name]
		fmt.Printf("  Fields bound: %d of %d\n", len(bindings), len(model.Fields))
		for _, f := range model.Fields {
			header, ok := bindings[f.Name]
			if !ok {
				header = "- (accepts: " + strings.Join(normalize.Aliases(f.Name), ", ") + ")"
			}
			fmt.Printf("    %-18s ← %s\n", f.Header, header)
		}
	}
	fmt.Println()
	fmt.Printf("Rows read:      %d\n", s.RowsRead)
	fmt.Printf("Rows kept:      %d\n", s.RowsKept)
	fmt.Printf("Rows dropped:   %d (no patient id)\n", s.RowsDropped)
	fmt.Printf("Date fallbacks: %d\n", s.DateFallbacks)
	fmt.Printf("Load time:      %s\n", s.DurationLoad)

	facets := dashboard.FacetOptions(res.Records)
	fmt.Println()
	printFacet("Departments", facets.Departments)
	printFacet("Doctors", facets.Doctors)
	printFacet("Patient classes", facets.PatientClasses)
	printFacet("Service groups", facets.ServiceGroups)
	return nil
}

func printFacet(title string, values []string) {
	const maxShown = 12
	shown := values
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	line := strings.Join(shown, ", ")
	if len(values) > maxShown {
		line += fmt.Sprintf(", … (+%d)", len(values)-maxShown)
	}
	fmt.Printf("%-16s %d: %s\n", title+":", len(values), line)
}
