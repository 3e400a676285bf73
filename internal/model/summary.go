package model

import "time"

// IngestSummary captures metrics from a single load of the working set.
type IngestSummary struct {
	Sources       []string
	RowsRead      int64
	RowsKept      int64
	RowsDropped   int64 // no patient identifier
	DateFallbacks int64 // date cells that fell back to "now"
	DurationLoad  time.Duration
	DurationNorm  time.Duration
	DurationTotal time.Duration
}

// ExportSummary captures metrics from a Postgres export run.
type ExportSummary struct {
	ExportBatchID string
	RowsCopied    int64
	Duration      time.Duration
}
