package table

import (
	"strings"
)

const (
	// maxCategories is the most distinct values a categorical column may have.
	maxCategories = 50

	// maxCategoryRatio is the largest distinct/non-empty ratio for a
	// categorical column.
	maxCategoryRatio = 0.5
)

// InferType infers a column type from its values.
//
// A column is numeric when every non-empty value parses as a number, and
// categorical when it is non-numeric with few distinct values relative to
// its size. Everything else, including an all-empty column, is text.
func InferType(values []Value) ColumnType {
	nonEmpty := 0
	numeric := true
	distinct := make(map[string]struct{})

	for _, v := range values {
		if v.IsEmpty() || strings.TrimSpace(v.String()) == "" {
			continue
		}
		nonEmpty++
		if numeric {
			if _, ok := v.Float(); !ok {
				numeric = false
			}
		}
		if len(distinct) <= maxCategories {
			distinct[v.String()] = struct{}{}
		}
	}

	switch {
	case nonEmpty == 0:
		return TypeText
	case numeric:
		return TypeNumeric
	case len(distinct) <= maxCategories && float64(len(distinct)) <= float64(nonEmpty)*maxCategoryRatio:
		return TypeCategorical
	default:
		return TypeText
	}
}

// typed converts values of a numeric column to number values.
func typed(typ ColumnType, values []Value) []Value {
	if typ != TypeNumeric {
		return values
	}
	for i, v := range values {
		if v.Kind() != KindText {
			continue
		}
		if n, ok := parseNumber(v.String()); ok {
			values[i] = n
		}
	}
	return values
}
