package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/hisdash/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading ExportRows from a channel.
// The bounded channel gives backpressure between the row producer and the COPY writer.
type ChannelSource struct {
	ch      <-chan *model.ExportRow
	current *model.ExportRow
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.ExportRow) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err returns any error encountered during iteration.
func (s *ChannelSource) Err() error {
	return s.err
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)
