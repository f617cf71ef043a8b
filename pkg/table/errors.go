package table

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches one of these with errors.Is.
var (
	// ErrDecode indicates the input bytes cannot be read in the requested encoding.
	ErrDecode = errors.New("cannot decode input")

	// ErrParse indicates structurally malformed delimited content.
	ErrParse = errors.New("malformed delimited content")

	// ErrColumnNotFound indicates a requested column is absent.
	ErrColumnNotFound = errors.New("column not found")

	// ErrNameCollision indicates a derived column name already exists.
	ErrNameCollision = errors.New("column name already exists")

	// ErrEmptySelection indicates an operation was requested with no columns.
	ErrEmptySelection = errors.New("no columns selected")

	// ErrInputTooLarge indicates the input exceeds the configured size limit.
	ErrInputTooLarge = errors.New("input too large")
)

// DecodeError reports bytes that are not valid in Encoding.
type DecodeError struct {
	Encoding Encoding
	// Offset is the byte offset of the first invalid sequence, or -1 if unknown.
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("cannot decode input as %s", e.Encoding)
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" (invalid byte at offset %d)", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// ParseError reports malformed delimited content.
type ParseError struct {
	// Line is the 1-based input line, or 0 when not tied to a line.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ColumnNotFoundError reports a missing column.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column not found: %q", e.Column)
}

func (e *ColumnNotFoundError) Is(target error) bool { return target == ErrColumnNotFound }

// NameCollisionError reports a column name that is already taken.
type NameCollisionError struct {
	Name string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("column name already exists: %q", e.Name)
}

func (e *NameCollisionError) Is(target error) bool { return target == ErrNameCollision }

// EmptySelectionError reports an operation requested with zero columns.
type EmptySelectionError struct {
	Op string
}

func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("%s: no columns selected", e.Op)
}

func (e *EmptySelectionError) Is(target error) bool { return target == ErrEmptySelection }
