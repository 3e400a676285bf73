package parquetio

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/hisdash/internal/model"
)

// WriteSnapshot writes records to path as a zstd-compressed Parquet file and
// returns the number of rows written.
func WriteSnapshot(path string, records []model.Record) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[SnapshotRow](f, parquet.Compression(&parquet.Zstd))
	rows := make([]SnapshotRow, 0, readBatchSize)
	written := 0
	flush := func() error {
		n, err := w.Write(rows)
		written += n
		rows = rows[:0]
		return err
	}

	for i := range records {
		rows = append(rows, FromRecord(&records[i]))
		if len(rows) == cap(rows) {
			if err := flush(); err != nil {
				return written, fmt.Errorf("write snapshot rows: %w", err)
			}
		}
	}
	if err := flush(); err != nil {
		return written, fmt.Errorf("write snapshot rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return written, fmt.Errorf("close snapshot writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return written, fmt.Errorf("close snapshot: %w", err)
	}
	return written, nil
}
