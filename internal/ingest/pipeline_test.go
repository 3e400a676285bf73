package ingest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/hisdash/internal/ingest"
	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/normalize"
	"github.com/gyeh/hisdash/internal/source"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func testOpts() normalize.Options {
	return normalize.Options{Location: time.UTC, Now: func() time.Time { return testNow }}
}

func writeCSV(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

type slowSource struct {
	name  string
	delay time.Duration
	rows  []model.Row
	err   error
}

func (s *slowSource) Name() string { return s.name }

func (s *slowSource) Load(ctx context.Context) (*source.Table, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return &source.Table{Headers: []string{"MA_BN"}, Rows: s.rows}, nil
}

func TestRun_DropsRowsWithoutPatient(t *testing.T) {
	path := writeCSV(t, "billing.csv", "Mã BN,Khoa,Thành tiền,Ngày thanh toán\nBN1,Nội,100,01/05/2024\n,Nội,999,01/05/2024\nBN2,Nhi,50,bad-date\n")

	res, err := ingest.Run(context.Background(), zerolog.Nop(), []source.Source{&source.CSV{Path: path}}, testOpts())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := res.Summary
	if s.RowsRead != 3 || s.RowsKept != 2 || s.RowsDropped != 1 {
		t.Errorf("read/kept/dropped = %d/%d/%d", s.RowsRead, s.RowsKept, s.RowsDropped)
	}
	if s.DateFallbacks != 1 {
		t.Errorf("DateFallbacks = %d, want 1", s.DateFallbacks)
	}
	if res.Records[0].PatientID != "BN1" || res.Records[1].PatientID != "BN2" {
		t.Errorf("records = %+v", res.Records)
	}
	if res.Records[0].Department != "Nội" || res.Records[0].Amount != 100 {
		t.Errorf("record 0 = %+v", res.Records[0])
	}
	if got := res.Bindings["billing.csv"]["PatientID"]; got != "Mã BN" {
		t.Errorf("PatientID bound to %q", got)
	}
	if len(res.Sources) != 1 || len(res.Sources[0].SHA256) != 64 {
		t.Errorf("sources = %+v", res.Sources)
	}
}

func TestRun_MultipleSourcesKeepOrder(t *testing.T) {
	srcs := []source.Source{
		&slowSource{name: "slow", delay: 30 * time.Millisecond, rows: []model.Row{{"MA_BN": "A"}}},
		&slowSource{name: "fast", rows: []model.Row{{"MA_BN": "B"}, {"MA_BN": "C"}}},
	}
	res, err := ingest.Run(context.Background(), zerolog.Nop(), srcs, testOpts())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var got []string
	for _, r := range res.Records {
		got = append(got, r.PatientID)
	}
	if len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("order = %v", got)
	}
	if len(res.Summary.Sources) != 2 || res.Summary.Sources[0] != "slow" {
		t.Errorf("sources = %v", res.Summary.Sources)
	}
}

func TestRun_PreflightErrors(t *testing.T) {
	_, err := ingest.Run(context.Background(), zerolog.Nop(), nil, testOpts())
	var pe *ingest.PipelineError
	if !errors.As(err, &pe) || pe.Phase != "preflight" {
		t.Fatalf("expected preflight error, got %v", err)
	}

	_, err = ingest.Run(context.Background(), zerolog.Nop(), []source.Source{&source.CSV{Path: "/nonexistent/data.csv"}}, testOpts())
	if !errors.As(err, &pe) || pe.Phase != "preflight" {
		t.Fatalf("expected preflight error for missing file, got %v", err)
	}
}

func TestRun_LoadError(t *testing.T) {
	boom := errors.New("boom")
	srcs := []source.Source{
		&slowSource{name: "ok", delay: time.Second},
		&slowSource{name: "bad", err: boom},
	}
	start := time.Now()
	_, err := ingest.Run(context.Background(), zerolog.Nop(), srcs, testOpts())
	var pe *ingest.PipelineError
	if !errors.As(err, &pe) || pe.Phase != "load" {
		t.Fatalf("expected load error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got %v", err)
	}
	if time.Since(start) > 900*time.Millisecond {
		t.Error("failure did not cancel the slow load")
	}
}

func TestRun_Sample(t *testing.T) {
	res, err := ingest.Run(context.Background(), zerolog.Nop(), []source.Source{&source.Sample{Count: 40, Seed: 1, Now: testNow}}, testOpts())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Summary.RowsKept != 40 || res.Summary.DateFallbacks != 0 {
		t.Errorf("summary = %+v", res.Summary)
	}
	for _, r := range res.Records {
		if r.PaidAt.After(testNow.Add(24*time.Hour)) || r.Amount <= 0 {
			t.Fatalf("implausible sample record %+v", r)
		}
	}
}
