// Package testdata reads request values from a workbook with one sheet per
// scenario: row 1 holds field names, the rows below hold values.
package testdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrNoDataRow     = errors.New("sheet has no data row")
)

// Row maps a field name to its cell text. A field with no cell is absent.
type Row map[string]string

// Get returns nil when the field has no cell.
func (r Row) Get(field string) *string {
	v, ok := r[field]
	if !ok {
		return nil
	}
	return &v
}

type Workbook struct {
	f    *excelize.File
	path string
}

func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{f: f, path: path}, nil
}

func (w *Workbook) Close() error { return w.f.Close() }

func (w *Workbook) Sheets() []string { return w.f.GetSheetList() }

// Rows returns every data row of sheet, keyed by the header row.
func (w *Workbook) Rows(sheet string) ([]Row, error) {
	idx, err := w.f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, w.path)
	}

	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := Row{}
		for i, v := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if _, dup := row[header[i]]; dup {
				continue
			}
			row[header[i]] = v
		}
		out = append(out, row)
	}
	return out, nil
}

// Row returns the first data row of sheet.
func (w *Workbook) Row(sheet string) (Row, error) {
	rows, err := w.Rows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoDataRow, sheet)
	}
	return rows[0], nil
}

// ReadRow opens path, reads the first data row of sheet and closes the file.
func ReadRow(path, sheet string) (Row, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.Row(sheet)
}
