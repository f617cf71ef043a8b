package table

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns the rows of the first sheet of an XLSX workbook.
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ParseError{Err: fmt.Errorf("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	return rows, nil
}

// writeXLSX writes t as a single-sheet XLSX workbook.
func writeXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	header := make([]any, t.ColumnCount())
	for i, name := range t.ColumnNames() {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r := 0; r < t.RowCount(); r++ {
		row := make([]any, t.ColumnCount())
		for j, v := range t.Row(r) {
			switch v.Kind() {
			case KindNull:
				row[j] = nil
			case KindNumber:
				row[j], _ = v.Float()
			default:
				row[j] = v.String()
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
