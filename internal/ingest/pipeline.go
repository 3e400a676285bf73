// Package ingest turns configured sources into the canonical record set:
// preflight, load, normalize, then drop rows without a patient identifier.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/normalize"
	"github.com/gyeh/hisdash/internal/source"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Result is the output of a pipeline run.
type Result struct {
	Records []model.Record
	Summary *model.IngestSummary
	// Bindings maps each source name to the header each canonical field bound to.
	Bindings map[string]map[string]string
	Sources  []SourceInfo
}

// Run executes the pipeline: preflight → load → normalize.
func Run(ctx context.Context, log zerolog.Logger, srcs []source.Source, opts normalize.Options) (*Result, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Int("sources", len(srcs)).Msg("starting preflight")
	pf, err := Preflight(ctx, log, srcs)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	// Phase 2: Load
	loadStart := time.Now()
	tables, err := LoadAll(ctx, srcs)
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}
	loadDur := time.Since(loadStart)

	res := &Result{
		Bindings: make(map[string]map[string]string, len(srcs)),
		Sources:  pf.Sources,
	}
	summary := &model.IngestSummary{DurationLoad: loadDur}
	for i, t := range tables {
		name := srcs[i].Name()
		summary.Sources = append(summary.Sources, name)
		bindings := normalize.ResolveHeaders(t.Headers)
		res.Bindings[name] = bindings
		logBindings(log, name, t, bindings)
	}

	// Phase 3: Normalize
	normStart := time.Now()
	n := normalize.New(opts)
	for _, t := range tables {
		for _, row := range t.Rows {
			if err := ctx.Err(); err != nil {
				return nil, &PipelineError{Phase: "normalize", Err: err}
			}
			summary.RowsRead++
			rec := n.Record(row)
			if rec.PatientID == "" {
				summary.RowsDropped++
				continue
			}
			res.Records = append(res.Records, rec)
		}
	}
	summary.RowsKept = int64(len(res.Records))
	summary.DateFallbacks = n.Fallbacks()
	summary.DurationNorm = time.Since(normStart)
	summary.DurationTotal = time.Since(totalStart)
	res.Summary = summary

	if summary.DateFallbacks > 0 {
		log.Warn().
			Int64("date_fallbacks", summary.DateFallbacks).
			Msg("unparseable dates replaced with the current time")
	}
	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_kept", summary.RowsKept).
		Int64("rows_dropped", summary.RowsDropped).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("ingest pipeline complete")

	return res, nil
}

func logBindings(log zerolog.Logger, name string, t *source.Table, bindings map[string]string) {
	var missing []string
	for _, f := range model.Fields {
		if _, ok := bindings[f.Name]; !ok {
			missing = append(missing, f.Header)
		}
	}
	ev := log.Info()
	if len(missing) > 0 {
		ev = log.Warn().Strs("unbound", missing)
	}
	ev.Str("source", name).
		Int("rows", len(t.Rows)).
		Int("bound_fields", len(bindings)).
		Msg("header binding")
	if len(t.Rows) > 0 {
		if _, ok := bindings["PatientID"]; !ok {
			log.Warn().Str("source", name).Msg("no patient identifier column; every row will be dropped")
		}
	}
}
