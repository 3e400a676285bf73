// Package source loads raw spreadsheet rows from the places a hospital keeps
// its billing export: a CSV or XLSX file, a published Google Sheet, or a
// synthetic sample for demos.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gyeh/hisdash/internal/model"
)

// Table is a loaded sheet: its header row and the data rows keyed by header.
type Table struct {
	Headers []string
	Rows    []model.Row
}

// Source yields one table of raw rows.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Table, error)
}

// File is implemented by sources backed by a local file.
type File interface {
	FilePath() string
}

// Open picks a file source by extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return &CSV{Path: path}, nil
	case ".xlsx", ".xlsm":
		return &XLSX{Path: path}, nil
	case ".parquet":
		return &Snapshot{Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv, .xlsx or .parquet)", filepath.Ext(path))
	}
}

// tableFromRecords treats the first non-blank record as the header row and
// maps each following non-blank record onto it. Short rows leave trailing
// columns absent, blank headers are ignored and the first of two identical
// headers wins.
func tableFromRecords(records [][]string) *Table {
	t := &Table{Rows: []model.Row{}}
	i := 0
	for i < len(records) && blank(records[i]) {
		i++
	}
	if i == len(records) {
		return t
	}

	header := records[i]
	t.Headers = make([]string, 0, len(header))
	cols := make([]int, 0, len(header))
	seen := make(map[string]struct{}, len(header))
	for j, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		t.Headers = append(t.Headers, h)
		cols = append(cols, j)
	}

	for _, rec := range records[i+1:] {
		if blank(rec) {
			continue
		}
		row := make(model.Row, len(cols))
		for k, j := range cols {
			if j < len(rec) {
				row[t.Headers[k]] = rec[j]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
