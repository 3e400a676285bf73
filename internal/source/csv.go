package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSV reads a comma-separated export. Exactly one of Path or Reader is used;
// Path wins when both are set.
type CSV struct {
	Path   string
	Reader io.Reader
}

func (c *CSV) Name() string {
	if c.Path != "" {
		return filepath.Base(c.Path)
	}
	return "csv"
}

func (c *CSV) FilePath() string { return c.Path }

func (c *CSV) Load(ctx context.Context) (*Table, error) {
	r := c.Reader
	if c.Path != "" {
		f, err := os.Open(c.Path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", c.Path, err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return nil, fmt.Errorf("csv source has neither path nor reader")
	}
	return ParseCSV(ctx, r)
}

// ParseCSV parses CSV text into a table. A UTF-8 byte order mark is skipped,
// quotes are parsed leniently and rows may have any number of fields.
func ParseCSV(ctx context.Context, r io.Reader) (*Table, error) {
	br := bufio.NewReaderSize(r, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := br.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return tableFromRecords(records), nil
}
