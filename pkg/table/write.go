package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format is an output serialization format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// WriteOptions configures Write.
type WriteOptions struct {
	// Delimiter separates fields in CSV output. Defaults to ','.
	Delimiter rune

	// Format selects CSV or XLSX. Defaults to CSV.
	Format Format
}

// Write serializes t with a header row. CSV output is UTF-8 and writes
// missing values as empty fields.
func Write(w io.Writer, t *Table, opts WriteOptions) error {
	switch opts.Format {
	case FormatCSV, "":
		return writeCSV(w, t, opts.Delimiter)
	case FormatXLSX:
		return writeXLSX(w, t)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// Marshal returns t serialized by Write.
func Marshal(t *Table, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(w io.Writer, t *Table, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}

	if err := cw.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, t.ColumnCount())
	for r := 0; r < t.RowCount(); r++ {
		for j, c := range t.columns {
			record[j] = c.Values[r].String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SuggestedName returns a download file name for a table derived from
// source by action ("filtered", "cleaned", ...). With no source the name
// is "<action>_data.<ext>".
func SuggestedName(source, action string, format Format) string {
	ext := string(format)
	if ext == "" {
		ext = string(FormatCSV)
	}
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	for _, compressed := range []string{".gz", ".bz2", ".xz", ".zst"} {
		if strings.HasSuffix(strings.ToLower(source), compressed) {
			stem = strings.TrimSuffix(stem, filepath.Ext(stem))
		}
	}
	if source == "" || stem == "" || stem == "." || stem == "-" {
		return fmt.Sprintf("%s_data.%s", action, ext)
	}
	return fmt.Sprintf("%s_%s.%s", stem, action, ext)
}
