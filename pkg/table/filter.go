package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Predicate decides whether a cell value keeps its row.
type Predicate interface {
	Match(v Value) bool
	String() string
}

// Equals matches values whose text equals Value exactly. Missing values
// never match.
type Equals struct {
	Value string
}

func (p Equals) Match(v Value) bool {
	return !v.IsNull() && v.String() == p.Value
}

func (p Equals) String() string {
	return fmt.Sprintf("== %q", p.Value)
}

// Between matches numeric values in [Min, Max].
type Between struct {
	Min, Max float64
}

func (p Between) Match(v Value) bool {
	f, ok := v.Float()
	return ok && f >= p.Min && f <= p.Max
}

func (p Between) String() string {
	return fmt.Sprintf("in [%g, %g]", p.Min, p.Max)
}

// Contains matches values containing Substr, ignoring case.
type Contains struct {
	Substr string
}

func (p Contains) Match(v Value) bool {
	if v.IsNull() {
		return false
	}
	return strings.Contains(strings.ToLower(v.String()), strings.ToLower(p.Substr))
}

func (p Contains) String() string {
	return fmt.Sprintf("contains %q", p.Substr)
}

// PredicateFor builds the predicate that suits col's type from a raw
// user-supplied value: numeric columns take a "min:max" range (either
// side may be omitted to use the column's bound), categorical columns an
// exact value, and text columns a substring.
func PredicateFor(col *Column, raw string) (Predicate, error) {
	switch col.Type {
	case TypeNumeric:
		minStr, maxStr, found := strings.Cut(raw, ":")
		if !found {
			maxStr = minStr
		}
		minStr, maxStr = strings.TrimSpace(minStr), strings.TrimSpace(maxStr)

		// Omitted bounds default to the column range, or are unbounded
		// when the column holds no numbers.
		lo, hi := math.Inf(-1), math.Inf(1)
		if minStr == "" || maxStr == "" {
			if clo, chi, err := columnRange(col); err == nil {
				lo, hi = clo, chi
			}
		}
		var err error
		if minStr != "" {
			if lo, err = strconv.ParseFloat(minStr, 64); err != nil {
				return nil, fmt.Errorf("invalid range minimum %q: %w", minStr, err)
			}
		}
		if maxStr != "" {
			if hi, err = strconv.ParseFloat(maxStr, 64); err != nil {
				return nil, fmt.Errorf("invalid range maximum %q: %w", maxStr, err)
			}
		}
		if lo > hi {
			return nil, fmt.Errorf("invalid range: minimum %g is greater than maximum %g", lo, hi)
		}
		return Between{Min: lo, Max: hi}, nil
	case TypeCategorical:
		return Equals{Value: raw}, nil
	default:
		return Contains{Substr: raw}, nil
	}
}

// Filter returns a new table with the rows whose value in column matches
// pred, in their original order. t is not modified.
func Filter(t *Table, column string, pred Predicate) (*Table, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	rows := make([]int, 0, col.Len())
	for i, v := range col.Values {
		if pred.Match(v) {
			rows = append(rows, i)
		}
	}
	return t.selectRows(rows)
}
