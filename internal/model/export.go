package model

import "github.com/google/uuid"

// ExportRow is one canonical record tagged with its export batch and position.
// It maps to a row in dashboard.billing_records.
type ExportRow struct {
	ExportBatchID   uuid.UUID
	SourceRowNumber int64
	RowHash         []byte
	Record          *Record
}

// ExportColumns returns the column names for COPY into dashboard.billing_records.
// Order must match CopyValues().
func ExportColumns() []string {
	return append([]string{"export_batch_id", "source_row_number", "row_hash"}, Columns()...)
}

// CopyValues returns the row values in ExportColumns() order.
func (r *ExportRow) CopyValues() []any {
	return append([]any{r.ExportBatchID, r.SourceRowNumber, r.RowHash}, r.Record.CopyValues()...)
}
