package ingest

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gyeh/hisdash/internal/source"
)

// maxConcurrentLoads bounds how many sources are fetched at once.
const maxConcurrentLoads = 4

// LoadAll loads every source concurrently and returns the tables in argument
// order. The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, srcs []source.Source) ([]*source.Table, error) {
	tables := make([]*source.Table, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, src := range srcs {
		g.Go(func() error {
			t, err := src.Load(gctx)
			if err != nil {
				return fmt.Errorf("load %s: %w", src.Name(), err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
