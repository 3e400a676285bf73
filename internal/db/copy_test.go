package db

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/hisdash/internal/model"
)

func TestChannelSource_Order(t *testing.T) {
	batch := uuid.New()
	ch := make(chan *model.ExportRow, 3)
	for i, id := range []string{"BN1", "BN2", "BN3"} {
		ch <- &model.ExportRow{
			ExportBatchID:   batch,
			SourceRowNumber: int64(i + 1),
			RowHash:         []byte{byte(i)},
			Record:          &model.Record{PatientID: id, PaidAt: time.Unix(0, 0).UTC()},
		}
	}
	close(ch)

	src := NewChannelSource(ch)
	var got []string
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			t.Fatalf("Values: %v", err)
		}
		if len(vals) != len(model.ExportColumns()) {
			t.Fatalf("got %d values for %d columns", len(vals), len(model.ExportColumns()))
		}
		if vals[0] != batch {
			t.Errorf("first value = %v, want batch id", vals[0])
		}
		got = append(got, vals[3].(string))
	}
	if src.Err() != nil {
		t.Fatalf("Err: %v", src.Err())
	}
	if len(got) != 3 || got[0] != "BN1" || got[2] != "BN3" {
		t.Errorf("rows out of order: %v", got)
	}
}

func TestChannelSource_Empty(t *testing.T) {
	ch := make(chan *model.ExportRow)
	close(ch)
	if NewChannelSource(ch).Next() {
		t.Error("Next on closed empty channel should be false")
	}
}

func TestExportColumns_MatchTable(t *testing.T) {
	cols := model.ExportColumns()
	if cols[0] != "export_batch_id" || cols[1] != "source_row_number" || cols[2] != "row_hash" {
		t.Errorf("unexpected leading columns: %v", cols[:3])
	}
	if cols[3] != "patient_id" || cols[len(cols)-1] != "stay_days" {
		t.Errorf("record columns out of order: %v", cols)
	}
}

func TestMigrationNames_Sorted(t *testing.T) {
	names, err := MigrationNames()
	if err != nil {
		t.Fatalf("MigrationNames: %v", err)
	}
	if len(names) < 2 {
		t.Fatalf("expected at least 2 migrations, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("migrations not sorted: %v", names)
		}
	}
	if names[0] != "001_dashboard.sql" {
		t.Errorf("first migration = %q", names[0])
	}
}

func TestExportError_Unwrap(t *testing.T) {
	inner := errTest("boom")
	err := &ExportError{Phase: "copy", Err: inner}
	if err.Error() != "export copy: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped error")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
