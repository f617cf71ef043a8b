package output

import (
	"bufio"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// encodeFunc writes one document to w.
type encodeFunc func(w io.Writer, v any) error

func jsonEncoder(pretty bool, indent string) encodeFunc {
	return func(w io.Writer, v any) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if pretty {
			enc.SetIndent("", indent)
		}
		return enc.Encode(v)
	}
}

func yamlEncoder(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// DocumentWriter buffers records and emits them as one document on Flush:
// a single record on its own, several as a list.
type DocumentWriter struct {
	w       *bufio.Writer
	encode  encodeFunc
	records []any
	flushed bool
}

func newDocumentWriter(w io.Writer, encode encodeFunc) *DocumentWriter {
	return &DocumentWriter{
		w:      bufio.NewWriter(w),
		encode: encode,
	}
}

// Write buffers a single record.
func (d *DocumentWriter) Write(record any) error {
	d.records = append(d.records, record)
	return nil
}

// WriteAll buffers multiple records.
func (d *DocumentWriter) WriteAll(records []any) error {
	d.records = append(d.records, records...)
	return nil
}

// Flush writes the buffered records. Later calls are no-ops.
func (d *DocumentWriter) Flush() error {
	if d.flushed {
		return nil
	}
	d.flushed = true

	var doc any = d.records
	switch len(d.records) {
	case 0:
		doc = []any{}
	case 1:
		doc = d.records[0]
	}

	if err := d.encode(d.w, doc); err != nil {
		return err
	}
	return d.w.Flush()
}

// Close flushes the writer.
func (d *DocumentWriter) Close() error {
	return d.Flush()
}

// LineWriter writes one compact JSON record per line as records arrive.
type LineWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewLineWriter creates a JSONL writer.
func NewLineWriter(w io.Writer) *LineWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &LineWriter{w: bw, enc: enc}
}

// Write writes a single record as a JSON line.
func (l *LineWriter) Write(record any) error {
	if err := l.enc.Encode(record); err != nil {
		return err
	}
	return l.w.Flush()
}

// WriteAll writes multiple records as JSON lines.
func (l *LineWriter) WriteAll(records []any) error {
	for _, r := range records {
		if err := l.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (l *LineWriter) Flush() error {
	return l.w.Flush()
}

// Close flushes the writer.
func (l *LineWriter) Close() error {
	return l.Flush()
}
