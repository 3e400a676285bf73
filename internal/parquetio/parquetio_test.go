package parquetio

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/hisdash/internal/model"
)

func testRecords(n int) []model.Record {
	base := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	out := make([]model.Record, n)
	for i := range out {
		ts := base.Add(time.Duration(i) * time.Hour)
		out[i] = model.Record{
			PatientID:     "BN" + string(rune('A'+i%26)),
			PatientClass:  "Bảo hiểm",
			AdmittedAt:    ts,
			DeptEnteredAt: ts,
			DischargedAt:  ts.Add(48 * time.Hour),
			PaidAt:        ts.Add(72 * time.Hour),
			Department:    "Nội",
			Doctor:        model.Anonymous,
			DiseaseCode:   "K29.0",
			ServiceGroup:  model.Other,
			Amount:        float64(i) * 1000.5,
			Outcome:       "Khỏi",
			StayDays:      i % 9,
		}
	}
	return out
}

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.parquet")
	records := testRecords(2500)

	n, err := WriteSnapshot(path, records)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if n != len(records) {
		t.Errorf("wrote %d rows, want %d", n, len(records))
	}

	got, err := ReadSnapshot(path, time.UTC)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip mismatch; first got %+v\nwant %+v", got[0], records[0])
	}
}

func TestSnapshot_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if _, err := WriteSnapshot(path, nil); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	got, err := ReadSnapshot(path, nil)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestOpen_RejectsForeignSchema(t *testing.T) {
	type other struct {
		Name string `parquet:"name"`
	}
	path := filepath.Join(t.TempDir(), "other.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := parquet.NewGenericWriter[other](f)
	w.Write([]other{{Name: "x"}})
	w.Close()
	f.Close()

	_, err = Open(path)
	if err == nil || !strings.Contains(err.Error(), "patient_id") {
		t.Fatalf("expected missing-column error, got %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/snap.parquet"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
