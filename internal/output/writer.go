// Package output writes run reports, such as column summaries and
// cleaning statistics, as JSON, JSONL, YAML or an aligned text table.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
	FormatText  Format = "text"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatJSONL, FormatYAML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "", "table":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use json, jsonl, yaml, or text)", s)
	}
}

// Writer serializes report records.
type Writer interface {
	// Write outputs a single record.
	Write(record any) error

	// WriteAll outputs multiple records.
	WriteAll(records []any) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing of JSON documents.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the JSON indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return newDocumentWriter(w, jsonEncoder(cfg.pretty, cfg.indent)), nil
	case FormatJSONL:
		return NewLineWriter(w), nil
	case FormatYAML:
		return newDocumentWriter(w, yamlEncoder), nil
	case FormatText:
		return NewTableWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
