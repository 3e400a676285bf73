package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/hisdash/internal/aggregate"
	"github.com/gyeh/hisdash/internal/dashboard"
	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/filter"
	"github.com/gyeh/hisdash/internal/ingest"
	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/source"
	"github.com/gyeh/hisdash/internal/targets"
)

func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVar(&cfg.Files, "file", nil, "CSV, XLSX or Parquet snapshot file (repeatable)")
	f.StringVar(&cfg.SheetID, "sheet-id", "", "Published Google Sheet id (or set HISDASH_SHEET_ID)")
	f.StringVar(&cfg.SnapshotPath, "snapshot", "", "Parquet snapshot written by 'hisdash snapshot'")
	f.IntVar(&cfg.SampleSize, "sample", 0, "Rows of synthetic sample data (used when no source is given)")
	f.Int64Var(&cfg.SampleSeed, "seed", 1, "Seed for --sample")
	f.BoolVar(&cfg.ClampNegativeAmounts, "clamp-negative", false, "Treat negative amounts as zero")
}

func addFacetFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Var(newPeriodValue(&cfg.Selection.Period), "period", "Time window: all, today, week, month, quarter, year, 7days, 30days, custom")
	f.StringVar(&cfg.Selection.From, "from", "", "Custom window start (YYYY-MM-DD or DD/MM/YYYY)")
	f.StringVar(&cfg.Selection.To, "to", "", "Custom window end, inclusive")
	f.StringArrayVar(&cfg.Selection.Departments, "department", nil, "Department filter (repeatable)")
	f.StringArrayVar(&cfg.Selection.Doctors, "doctor", nil, "Doctor filter (repeatable)")
	f.StringArrayVar(&cfg.Selection.PatientClasses, "patient-class", nil, "Patient class filter (repeatable)")
	f.StringArrayVar(&cfg.Selection.ServiceGroups, "service-group", nil, "Service group filter (repeatable)")
	f.StringVar(&cfg.TargetsPath, "targets", "", "Targets YAML file (default targets.yaml)")
}

// buildSources turns the configured inputs into sources. With nothing
// configured it falls back to the synthetic sample.
func buildSources(now time.Time) ([]source.Source, error) {
	var srcs []source.Source
	for _, path := range cfg.Files {
		src, err := source.Open(path)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	if cfg.SnapshotPath != "" {
		loc, err := cfg.Location()
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, &source.Snapshot{Path: cfg.SnapshotPath, Location: loc})
	}
	if cfg.SheetID != "" {
		srcs = append(srcs, source.NewSheet(cfg.SheetID))
	}
	if len(srcs) == 0 || cfg.SampleSize > 0 {
		srcs = append(srcs, &source.Sample{Count: cfg.SampleSize, Seed: cfg.SampleSeed, Now: now})
	}
	return srcs, nil
}

// loadRecords validates the config and runs the ingest pipeline, exiting on failure.
func loadRecords(ctx context.Context, log zerolog.Logger, now time.Time) *ingest.Result {
	srcs, err := buildSources(now)
	if err != nil {
		fatal(log, exitcode.ValidationError, err, "source configuration failed")
	}
	opts, err := cfg.NormalizeOptions()
	if err != nil {
		fatal(log, exitcode.UsageError, err, "config validation failed")
	}
	opts.Now = func() time.Time { return now }

	res, err := ingest.Run(ctx, log, srcs, opts)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("ingest failed")
			if pe.Phase == "preflight" {
				fatal(log, exitcode.ValidationError, nil, "aborting")
			}
			fatal(log, exitcode.SourceError, nil, "aborting")
		}
		fatal(log, exitcode.SourceError, err, "ingest failed")
	}
	met.RecordIngest(res.Summary)
	return res
}

// dashboardState builds the state for the configured selection and targets.
func dashboardState(log zerolog.Logger, records []model.Record, now time.Time) dashboard.State {
	plan, err := targets.Load(cfg.TargetsPath)
	if err != nil {
		fatal(log, exitcode.ValidationError, err, "targets")
	}
	st := dashboard.New(records, plan)
	st.Limits = cfg.Limits
	st.Trend = aggregate.Monthly
	if cfg.Trend == "day" {
		st.Trend = aggregate.Daily
	}
	st, err = st.Select(cfg.Selection, now)
	if err != nil {
		fatal(log, exitcode.UsageError, err, "invalid selection")
	}
	return st
}

// currentTime is now in the configured timezone.
func currentTime() time.Time {
	loc, err := cfg.Location()
	if err != nil {
		return time.Now()
	}
	return time.Now().In(loc)
}

// periodValue validates --period as a flag value.
type periodValue struct{ p *filter.Period }

func newPeriodValue(p *filter.Period) *periodValue { return &periodValue{p: p} }

func (v *periodValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *periodValue) Set(s string) error {
	p := filter.Period(strings.ToLower(strings.TrimSpace(s)))
	if !filter.ValidPeriod(p) {
		return errors.New("unknown period " + s)
	}
	*v.p = p
	return nil
}

func (v *periodValue) Type() string { return "period" }
