package source

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSX reads an Excel workbook. The first sheet is used unless Sheet names
// another. Cells are read raw, so dates arrive as Excel serial numbers and
// are converted by the date coercion.
type XLSX struct {
	Path   string
	Reader io.Reader
	Sheet  string
}

func (x *XLSX) Name() string {
	if x.Path != "" {
		return filepath.Base(x.Path)
	}
	return "xlsx"
}

func (x *XLSX) FilePath() string { return x.Path }

func (x *XLSX) Load(ctx context.Context) (*Table, error) {
	var (
		f   *excelize.File
		err error
	)
	switch {
	case x.Path != "":
		f, err = excelize.OpenFile(x.Path)
	case x.Reader != nil:
		f, err = excelize.OpenReader(x.Reader)
	default:
		return nil, fmt.Errorf("xlsx source has neither path nor reader")
	}
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet := x.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return tableFromRecords(rows), nil
}
