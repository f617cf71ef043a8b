package table

import (
	"strconv"
	"strings"
)

// Kind identifies what a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "null"
	}
}

// Value is a single cell: text, a number, or missing.
//
// A missing value is distinct from the empty string, but both count as
// empty for statistics. Numbers keep the text they were parsed from so a
// table round-trips without reformatting.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Null returns a missing value.
func Null() Value {
	return Value{}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64), num: f}
}

// parseNumber returns a numeric value for raw, keeping raw as its text.
func parseNumber(raw string) (Value, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Value{}, false
	}
	return Value{kind: KindNumber, text: raw, num: f}, true
}

// Kind returns what the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsEmpty reports whether the value is missing or the empty string.
func (v Value) IsEmpty() bool { return v.kind == KindNull || v.text == "" }

// String returns the text representation; missing values are "".
func (v Value) String() string { return v.text }

// Float returns the numeric value. Text values are parsed on demand.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Equal reports whether two values hold the same kind and text.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.text == o.text
}
