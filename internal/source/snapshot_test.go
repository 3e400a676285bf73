package source

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/parquetio"
)

func TestSnapshot_LoadAsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.parquet")
	paid := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	recs := []model.Record{{PatientID: "BN1", Department: "Nhi", Amount: 42, PaidAt: paid}}
	if _, err := parquetio.WriteSnapshot(path, recs); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	table, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	row := table.Rows[0]
	if row["MA_BN"] != "BN1" || row["KHOA"] != "Nhi" || row["THANH_TIEN"] != 42.0 {
		t.Errorf("row = %v", row)
	}
	if got, ok := row["NGAY_THANH_TOAN"].(time.Time); !ok || !got.Equal(paid) {
		t.Errorf("NGAY_THANH_TOAN = %v", row["NGAY_THANH_TOAN"])
	}
}
