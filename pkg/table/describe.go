package table

import (
	"fmt"
	"math"
)

// ColumnInfo summarizes one column.
type ColumnInfo struct {
	Name    string     `json:"name" yaml:"name"`
	Type    ColumnType `json:"type" yaml:"type"`
	NonNull int        `json:"non_null" yaml:"non_null"`
	Unique  int        `json:"unique" yaml:"unique"`
}

// Describe returns per-column information in column order.
func Describe(t *Table) []ColumnInfo {
	infos := make([]ColumnInfo, 0, t.ColumnCount())
	for _, c := range t.columns {
		distinct := make(map[string]struct{})
		nonNull := 0
		for _, v := range c.Values {
			if v.IsNull() {
				continue
			}
			nonNull++
			distinct[v.String()] = struct{}{}
		}
		infos = append(infos, ColumnInfo{
			Name:    c.Name,
			Type:    c.Type,
			NonNull: nonNull,
			Unique:  len(distinct),
		})
	}
	return infos
}

// Unique returns the distinct non-missing values of column in first-seen order.
func Unique(t *Table, column string) ([]string, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		if _, ok := seen[v.String()]; ok {
			continue
		}
		seen[v.String()] = struct{}{}
		out = append(out, v.String())
	}
	return out, nil
}

// Range returns the minimum and maximum numeric values of column.
func Range(t *Table, column string) (float64, float64, error) {
	col, err := t.Column(column)
	if err != nil {
		return 0, 0, err
	}
	return columnRange(col)
}

func columnRange(col *Column) (float64, float64, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range col.Values {
		f, ok := v.Float()
		if !ok {
			continue
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("column %q has no numeric values", col.Name)
	}
	return lo, hi, nil
}
