package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jmylchreest/tidycsv/internal/logger"
)

// LoadOptions configures Load.
type LoadOptions struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune

	// Encoding is the character encoding tried first. Defaults to utf-8.
	Encoding Encoding

	// Fallback is tried once when Encoding fails. Empty disables the retry.
	Fallback Encoding

	// NoHeader treats the first row as data and names columns column_1, column_2, ...
	NoHeader bool

	// MaxSize bounds the input size in bytes (after decompression). Zero means unlimited.
	MaxSize int64

	// Logger receives load diagnostics. Defaults to the package logger.
	Logger *slog.Logger
}

// DefaultLoadOptions returns comma-delimited UTF-8 with a latin-1 fallback.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Delimiter: ',',
		Encoding:  EncodingUTF8,
		Fallback:  EncodingLatin1,
	}
}

// ParseDelimiter maps a delimiter name or character to a rune.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",", "comma", "":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use comma, semicolon, tab, or pipe)", s)
	}
}

// Load parses raw bytes into a Table.
//
// Compressed input (gzip, bzip2, xz, zstd) is decompressed first and XLSX
// workbooks are read from their first sheet. Text is decoded with
// opts.Encoding; on failure opts.Fallback is tried once and its error, if
// any, is returned. Rows shorter than the header are padded with missing
// values and longer rows are truncated. Empty fields load as missing values.
func Load(data []byte, opts LoadOptions) (*Table, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	log := opts.Logger
	if log == nil {
		log = logger.With("component", "table")
	}

	if opts.MaxSize > 0 && int64(len(data)) > opts.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLarge, len(data), opts.MaxSize)
	}

	compression, isXLSX := sniff(data)
	if compression != CompressionNone {
		log.Debug("decompressing input", "compression", compression, "bytes", len(data))
		out, err := decompress(data, compression, opts.MaxSize)
		if err != nil {
			return nil, err
		}
		data = out
		_, isXLSX = sniff(data)
	}

	var records [][]string
	if isXLSX {
		log.Debug("reading workbook", "bytes", len(data))
		rows, err := readXLSX(data)
		if err != nil {
			return nil, err
		}
		records = rows
	} else {
		text, err := decodeText(data, opts.Encoding)
		if err != nil && opts.Fallback != "" && opts.Fallback != opts.Encoding {
			log.Warn("decode failed, retrying with fallback encoding",
				"encoding", opts.Encoding, "fallback", opts.Fallback, "error", err)
			text, err = decodeText(data, opts.Fallback)
		}
		if err != nil {
			return nil, err
		}

		records, err = parseRecords(text, opts.Delimiter)
		if err != nil {
			return nil, err
		}
	}

	return fromRecords(records, !opts.NoHeader, log)
}

// parseRecords splits delimited text into records.
func parseRecords(text string, delimiter rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: pe.Line, Err: pe.Err}
			}
			return nil, &ParseError{Err: err}
		}
		records = append(records, record)
	}
	return records, nil
}

// fromRecords builds a table from header and data records.
func fromRecords(records [][]string, hasHeader bool, log *slog.Logger) (*Table, error) {
	if len(records) == 0 {
		return nil, &ParseError{Err: errors.New("no columns to parse from input")}
	}

	var header []string
	body := records
	if hasHeader {
		header = headerNames(records[0])
		body = records[1:]
	} else {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	width := len(header)
	values := make([][]Value, width)
	for j := range values {
		values[j] = make([]Value, len(body))
	}

	padded, truncated := 0, 0
	for i, record := range body {
		switch {
		case len(record) < width:
			padded++
		case len(record) > width:
			truncated++
		}
		for j := 0; j < width; j++ {
			if j >= len(record) || record[j] == "" {
				values[j][i] = Null()
				continue
			}
			values[j][i] = Text(record[j])
		}
	}
	if padded > 0 || truncated > 0 {
		log.Warn("inconsistent field counts", "padded_rows", padded, "truncated_rows", truncated)
	}

	columns := make([]*Column, width)
	for j, name := range header {
		typ := InferType(values[j])
		columns[j] = &Column{Name: name, Type: typ, Values: typed(typ, values[j])}
	}

	t, err := New(columns...)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	log.Debug("table loaded", "rows", t.RowCount(), "columns", t.ColumnCount())
	return t, nil
}

// headerNames makes header names unique: blank names become "Unnamed: N"
// and repeats get ".1", ".2", ... suffixes.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	repeats := make(map[string]int)
	for i, name := range raw {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for used[name] {
			repeats[base]++
			name = fmt.Sprintf("%s.%d", base, repeats[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}
