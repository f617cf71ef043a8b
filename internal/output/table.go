package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"
)

// Row is a record that renders as one line of a text table.
type Row interface {
	Header() []string
	Cells() []string
}

// TableWriter renders Row records as a column-aligned text table.
// Column widths count display cells, so wide and combining characters
// line up. Records that are not Rows are printed with %v.
type TableWriter struct {
	w       *bufio.Writer
	header  []string
	rows    [][]string
	other   []any
	flushed bool
}

// NewTableWriter creates a text table writer.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: bufio.NewWriter(w)}
}

// Write buffers a single record.
func (t *TableWriter) Write(record any) error {
	row, ok := record.(Row)
	if !ok {
		t.other = append(t.other, record)
		return nil
	}
	if t.header == nil {
		t.header = row.Header()
	}
	t.rows = append(t.rows, row.Cells())
	return nil
}

// WriteAll buffers multiple records.
func (t *TableWriter) WriteAll(records []any) error {
	for _, r := range records {
		if err := t.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush renders the buffered records. Later calls are no-ops.
func (t *TableWriter) Flush() error {
	if t.flushed {
		return nil
	}
	t.flushed = true

	if t.header != nil {
		widths := make([]int, len(t.header))
		measure := func(cells []string) {
			for i, c := range cells {
				if i < len(widths) {
					widths[i] = max(widths[i], uniseg.StringWidth(c))
				}
			}
		}
		measure(t.header)
		for _, r := range t.rows {
			measure(r)
		}

		t.line(t.header, widths)
		rule := make([]string, len(widths))
		for i, w := range widths {
			rule[i] = strings.Repeat("-", w)
		}
		t.line(rule, widths)
		for _, r := range t.rows {
			t.line(r, widths)
		}
	}

	for _, o := range t.other {
		fmt.Fprintf(t.w, "%v\n", o)
	}
	return t.w.Flush()
}

// Close flushes the writer.
func (t *TableWriter) Close() error {
	return t.Flush()
}

func (t *TableWriter) line(cells []string, widths []int) {
	var sb strings.Builder
	for i, w := range widths {
		c := ""
		if i < len(cells) {
			c = cells[i]
		}
		sb.WriteString(c)
		if i < len(widths)-1 {
			sb.WriteString(strings.Repeat(" ", w-uniseg.StringWidth(c)+2))
		}
	}
	t.w.WriteString(strings.TrimRight(sb.String(), " "))
	t.w.WriteString("\n")
}
