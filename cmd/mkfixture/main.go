// mkfixture writes a synthetic billing dataset as CSV, XLSX and Parquet so the
// ingest paths can be exercised without real patient data.
// Usage: go run ./cmd/mkfixture --out testdata/bills --rows 500 --formats csv,xlsx,parquet
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/hisdash/internal/model"
	"github.com/gyeh/hisdash/internal/normalize"
	"github.com/gyeh/hisdash/internal/parquetio"
	"github.com/gyeh/hisdash/internal/source"
)

func main() {
	out := flag.String("out", "testdata/bills", "output path without extension")
	rows := flag.Int("rows", 200, "rows to generate")
	seed := flag.Int64("seed", 1, "random seed")
	formats := flag.String("formats", "csv,xlsx,parquet", "comma-separated output formats")
	flag.Parse()

	now := time.Now()
	table, err := (&source.Sample{Count: *rows, Seed: *seed, Now: now}).Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate sample: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	for _, format := range strings.Split(*formats, ",") {
		format = strings.TrimSpace(format)
		path := *out + "." + format
		var err error
		switch format {
		case "csv":
			err = writeCSV(path, table)
		case "xlsx":
			err = writeXLSX(path, table)
		case "parquet":
			recs := normalize.New(normalize.Options{Now: func() time.Time { return now }}).Records(table.Rows)
			_, err = parquetio.WriteSnapshot(path, recs)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(table.Rows), path)
	}
}

func cells(t *source.Table, row model.Row) []string {
	out := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		if v, ok := row[h]; ok && v != nil {
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

func writeCSV(path string, t *source.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Spreadsheet exports usually carry a BOM; keep it so the reader's BOM
	// handling is exercised.
	if _, err := f.WriteString("\ufeff"); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(cells(t, row)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func writeXLSX(path string, t *source.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for r, row := range t.Rows {
		vals := make([]any, len(t.Headers))
		for i, c := range cells(t, row) {
			vals[i] = c
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, vals); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
