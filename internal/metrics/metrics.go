// Package metrics keeps the process's Prometheus counters in a private
// registry. hisdash runs as a short-lived CLI, so the registry is written to a
// node-exporter textfile at exit instead of being served.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/gyeh/hisdash/internal/model"
)

// Metrics holds all Prometheus metrics for a hisdash run. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	ingestRows        *prometheus.CounterVec
	dateFallbacks     prometheus.Counter
	ingestDuration    *prometheus.HistogramVec
	assistantRequests *prometheus.CounterVec
	assistantDuration *prometheus.HistogramVec
	assistantTokens   *prometheus.CounterVec
	exportRows        prometheus.Counter
	exportDuration    prometheus.Histogram
}

// New creates a dedicated registry and registers all metrics in it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		ingestRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hisdash_ingest_rows_total",
				Help: "Source rows by ingest outcome (read, kept, dropped).",
			},
			[]string{"outcome"},
		),
		dateFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hisdash_date_fallbacks_total",
				Help: "Date cells that could not be parsed and fell back to the current time.",
			},
		),
		ingestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hisdash_ingest_duration_seconds",
				Help:    "Duration of ingest phases.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		assistantRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hisdash_assistant_requests_total",
				Help: "Assistant requests by mode and status.",
			},
			[]string{"mode", "status"},
		),
		assistantDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hisdash_assistant_duration_seconds",
				Help:    "Assistant round-trip latency by mode.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
			},
			[]string{"mode"},
		),
		assistantTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hisdash_assistant_tokens_total",
				Help: "LLM tokens consumed.",
			},
			[]string{"type"},
		),
		exportRows: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hisdash_export_rows_total",
				Help: "Records copied into Postgres.",
			},
		),
		exportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hisdash_export_duration_seconds",
				Help:    "Duration of Postgres exports.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordIngest adds one ingest run's counts and phase durations.
func (m *Metrics) RecordIngest(s *model.IngestSummary) {
	if m == nil || s == nil {
		return
	}
	m.ingestRows.WithLabelValues("read").Add(float64(s.RowsRead))
	m.ingestRows.WithLabelValues("kept").Add(float64(s.RowsKept))
	m.ingestRows.WithLabelValues("dropped").Add(float64(s.RowsDropped))
	m.dateFallbacks.Add(float64(s.DateFallbacks))
	m.ingestDuration.WithLabelValues("load").Observe(s.DurationLoad.Seconds())
	m.ingestDuration.WithLabelValues("normalize").Observe(s.DurationNorm.Seconds())
	m.ingestDuration.WithLabelValues("total").Observe(s.DurationTotal.Seconds())
}

// RecordAssistant records one assistant request. status is "success",
// "fallback" or "invalid".
func (m *Metrics) RecordAssistant(mode, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.assistantRequests.WithLabelValues(mode, status).Inc()
	m.assistantDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordTokens records prompt and completion token usage.
func (m *Metrics) RecordTokens(prompt, completion int) {
	if m == nil {
		return
	}
	m.assistantTokens.WithLabelValues("prompt").Add(float64(prompt))
	m.assistantTokens.WithLabelValues("completion").Add(float64(completion))
}

// RecordExport adds one export run.
func (m *Metrics) RecordExport(s *model.ExportSummary) {
	if m == nil || s == nil {
		return
	}
	m.exportRows.Add(float64(s.RowsCopied))
	m.exportDuration.Observe(s.Duration.Seconds())
}

// WriteTextfile writes the registry in the text exposition format for the
// node-exporter textfile collector. The write is atomic.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// IngestRows returns the cumulative row count for an ingest outcome.
func (m *Metrics) IngestRows(outcome string) float64 {
	return counterValue(m.ingestRows.WithLabelValues(outcome))
}

// DateFallbacks returns the cumulative date fallback count.
func (m *Metrics) DateFallbacks() float64 {
	return counterValue(m.dateFallbacks)
}

// AssistantRequests returns the cumulative request count for a mode and status.
func (m *Metrics) AssistantRequests(mode, status string) float64 {
	return counterValue(m.assistantRequests.WithLabelValues(mode, status))
}

// ExportRows returns the cumulative exported row count.
func (m *Metrics) ExportRows() float64 {
	return counterValue(m.exportRows)
}

// counterValue extracts the current float64 value from a counter.
func counterValue(c prometheus.Counter) float64 {
	out := &dto.Metric{}
	if err := c.Write(out); err != nil {
		return 0
	}
	if out.Counter != nil && out.Counter.Value != nil {
		return *out.Counter.Value
	}
	return 0
}
