package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/normalize"
	embedsql "github.com/gyeh/hisdash/internal/sql"
)

const copyBufferSize = 1024

// ExportError wraps an export failure with the phase where it occurred:
// "register", "copy" or "finalize".
type ExportError struct {
	Phase string
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %s", e.Phase, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Export copies records into dashboard.billing_records under a fresh export
// batch. On success the batch becomes the current one and earlier complete
// batches are marked superseded. A failed copy or finalize removes the batch.
func Export(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, records []model.Record, sources []string) (*model.ExportSummary, error) {
	start := time.Now()
	batchID := uuid.New()
	if sources == nil {
		sources = []string{}
	}
	log = log.With().Str("export_batch_id", batchID.String()).Logger()

	if _, err := pool.Exec(ctx, embedsql.RegisterBatch, batchID, sources, int64(len(records))); err != nil {
		return nil, &ExportError{Phase: "register", Err: err}
	}
	log.Info().Int("records", len(records)).Strs("sources", sources).Msg("export batch registered")

	copied, err := copyRecords(ctx, pool, batchID, records)
	if err != nil {
		cleanupBatch(log, pool, batchID)
		return nil, &ExportError{Phase: "copy", Err: err}
	}

	if err := finalizeBatch(ctx, pool, batchID, copied); err != nil {
		cleanupBatch(log, pool, batchID)
		return nil, &ExportError{Phase: "finalize", Err: err}
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_copied", copied).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(copied)/dur.Seconds()).
		Msg("export complete")

	return &model.ExportSummary{
		ExportBatchID: batchID.String(),
		RowsCopied:    copied,
		Duration:      dur,
	}, nil
}

// copyRecords streams records through a channel-backed CopyFromSource.
func copyRecords(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID, records []model.Record) (int64, error) {
	ch := make(chan *model.ExportRow, copyBufferSize)
	copyCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(ch)
		for i := range records {
			row := &model.ExportRow{
				ExportBatchID:   batchID,
				SourceRowNumber: int64(i + 1),
				RowHash:         normalize.RecordHash(&records[i]),
				Record:          &records[i],
			}
			select {
			case ch <- row:
			case <-copyCtx.Done():
				return
			}
		}
	}()

	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"dashboard", "billing_records"},
		model.ExportColumns(),
		NewChannelSource(ch),
	)
	// Unblock the producer if COPY stopped early.
	cancel()
	<-done
	if err != nil {
		return 0, err
	}
	if n != int64(len(records)) {
		return n, fmt.Errorf("copied %d of %d rows", n, len(records))
	}
	return n, nil
}

func finalizeBatch(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID, copied int64) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, embedsql.FinalizeBatch, batchID, copied); err != nil {
		return fmt.Errorf("finalize batch: %w", err)
	}
	if _, err := tx.Exec(ctx, embedsql.SupersedeBatches, batchID); err != nil {
		return fmt.Errorf("supersede batches: %w", err)
	}
	return tx.Commit(ctx)
}

// cleanupBatch deletes a failed batch. It runs on a fresh context so a
// cancelled export still cleans up after itself.
func cleanupBatch(log zerolog.Logger, pool *pgxpool.Pool, batchID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := DeleteBatch(ctx, pool, batchID); err != nil {
		log.Warn().Err(err).Msg("failed to remove export batch")
		return
	}
	log.Info().Msg("removed failed export batch")
}

// DeleteBatch removes an export batch and its rows.
func DeleteBatch(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID) error {
	_, err := pool.Exec(ctx, embedsql.DeleteBatch, batchID)
	return err
}

// DepartmentTotal is one row of the current batch's per-department rollup.
type DepartmentTotal struct {
	Department string
	Records    int64
	Patients   int64
	TotalCost  float64
}

// DepartmentTotals summarizes the current export batch by department,
// highest total cost first.
func DepartmentTotals(ctx context.Context, pool *pgxpool.Pool) ([]DepartmentTotal, error) {
	rows, err := pool.Query(ctx, embedsql.DepartmentTotals)
	if err != nil {
		return nil, fmt.Errorf("query department totals: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (DepartmentTotal, error) {
		var d DepartmentTotal
		err := row.Scan(&d.Department, &d.Records, &d.Patients, &d.TotalCost)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan department totals: %w", err)
	}
	return out, nil
}
