package source

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/parquetio"
)

// Snapshot replays a Parquet snapshot written by `hisdash snapshot`. Its rows
// are already canonical and pass through normalization unchanged.
type Snapshot struct {
	Path     string
	Location *time.Location
}

func (s *Snapshot) Name() string { return filepath.Base(s.Path) }

func (s *Snapshot) FilePath() string { return s.Path }

func (s *Snapshot) Load(ctx context.Context) (*Table, error) {
	records, err := parquetio.ReadSnapshot(s.Path, s.Location)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := &Table{Headers: model.Headers(), Rows: make([]model.Row, len(records))}
	for i := range records {
		t.Rows[i] = records[i].Row()
	}
	return t, nil
}
