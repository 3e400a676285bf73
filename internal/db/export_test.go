package db_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/hisdash/internal/db"
	"github.com/gyeh/hisdash/internal/model"
)

const (
	testPort     = 15433
	testDB       = "hisdash"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

// TestMain starts an embedded Postgres when HISDASH_EMBEDDED_PG=1. Without it
// the database tests skip and the unit tests still run.
func TestMain(m *testing.M) {
	if os.Getenv("HISDASH_EMBEDDED_PG") != "1" {
		os.Exit(m.Run())
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB connects, drops the dashboard schema and re-applies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDSN == "" {
		t.Skip("set HISDASH_EMBEDDED_PG=1 to run Postgres tests")
	}
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS dashboard CASCADE"); err != nil {
		pool.Close()
		t.Fatalf("drop schema: %v", err)
	}
	if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func testRecords() []model.Record {
	paid := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	mk := func(patient, dept string, amount float64) model.Record {
		return model.Record{
			PatientID:     patient,
			PatientClass:  "BHYT",
			AdmittedAt:    paid,
			DeptEnteredAt: paid,
			DischargedAt:  paid,
			PaidAt:        paid,
			Department:    dept,
			Doctor:        "BS. An",
			DiseaseCode:   "J18.9",
			ServiceGroup:  "Khám bệnh",
			Amount:        amount,
			Outcome:       "Khỏi",
			StayDays:      2,
		}
	}
	return []model.Record{
		mk("BN1", "Nội", 100),
		mk("BN1", "Nội", 50),
		mk("BN2", "Ngoại", 400),
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("second migration run should be idempotent: %v", err)
	}

	for _, tbl := range []string{"dashboard.export_batches", "dashboard.billing_records"} {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema || '.' || table_name = $1)", tbl).
			Scan(&exists)
		if err != nil {
			t.Fatalf("check table %s: %v", tbl, err)
		}
		if !exists {
			t.Errorf("table %s should exist after migrations", tbl)
		}
	}
}

func TestExport_CopiesAndFinalizes(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	recs := testRecords()

	summary, err := db.Export(ctx, pool, zerolog.Nop(), recs, []string{"bills.csv"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if summary.RowsCopied != int64(len(recs)) {
		t.Errorf("RowsCopied = %d, want %d", summary.RowsCopied, len(recs))
	}

	var status string
	var copied int64
	err = pool.QueryRow(ctx,
		"SELECT status, rows_copied FROM dashboard.export_batches WHERE export_batch_id = $1",
		summary.ExportBatchID).Scan(&status, &copied)
	if err != nil {
		t.Fatalf("query batch: %v", err)
	}
	if status != "complete" || copied != int64(len(recs)) {
		t.Errorf("batch status=%q rows_copied=%d", status, copied)
	}

	totals, err := db.DepartmentTotals(ctx, pool)
	if err != nil {
		t.Fatalf("DepartmentTotals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 departments, got %+v", totals)
	}
	if totals[0].Department != "Ngoại" || totals[0].TotalCost != 400 {
		t.Errorf("first department = %+v", totals[0])
	}
	if totals[1].Records != 2 || totals[1].Patients != 1 || totals[1].TotalCost != 150 {
		t.Errorf("second department = %+v", totals[1])
	}
}

func TestExport_SupersedesPreviousBatch(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	first, err := db.Export(ctx, pool, zerolog.Nop(), testRecords(), nil)
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	second, err := db.Export(ctx, pool, zerolog.Nop(), testRecords()[:1], nil)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}

	var status string
	if err := pool.QueryRow(ctx,
		"SELECT status FROM dashboard.export_batches WHERE export_batch_id = $1",
		first.ExportBatchID).Scan(&status); err != nil {
		t.Fatalf("query first batch: %v", err)
	}
	if status != "superseded" {
		t.Errorf("first batch status = %q, want superseded", status)
	}

	var current int64
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM dashboard.current_billing_records").Scan(&current); err != nil {
		t.Fatalf("count current: %v", err)
	}
	if current != second.RowsCopied {
		t.Errorf("current rows = %d, want %d", current, second.RowsCopied)
	}
}

func TestExport_EmptyRecordSet(t *testing.T) {
	pool := setupDB(t)
	summary, err := db.Export(context.Background(), pool, zerolog.Nop(), nil, nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if summary.RowsCopied != 0 {
		t.Errorf("RowsCopied = %d, want 0", summary.RowsCopied)
	}
}

func TestExport_CopyFailureRemovesBatch(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	// stay_days has a CHECK (>= 0); the normalizer never produces this.
	recs := testRecords()
	recs[1].StayDays = -1

	_, err := db.Export(ctx, pool, zerolog.Nop(), recs, nil)
	var ee *db.ExportError
	if !errors.As(err, &ee) || ee.Phase != "copy" {
		t.Fatalf("expected copy ExportError, got %v", err)
	}

	var batches int64
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM dashboard.export_batches").Scan(&batches); err != nil {
		t.Fatalf("count batches: %v", err)
	}
	if batches != 0 {
		t.Errorf("failed batch should be removed, found %d", batches)
	}
}
