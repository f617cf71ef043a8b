// Package table provides the in-memory tabular model: loading delimited
// bytes into named, typed columns, filtering rows into new tables, and
// serializing tables back to bytes.
//
// Tables are never mutated in place. Operations that change the shape of a
// table return a new Table; column value slices may be shared between
// tables and must be treated as read-only.
package table

import (
	"fmt"
)

// ColumnType is the inferred type of a column.
type ColumnType string

const (
	TypeText        ColumnType = "text"
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
)

// Column is a named, typed sequence of values aligned by row index.
type Column struct {
	Name   string
	Type   ColumnType
	Values []Value
}

// NewColumn creates a column and infers its type from values.
func NewColumn(name string, values []Value) *Column {
	return &Column{Name: name, Type: InferType(values), Values: values}
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	return len(c.Values)
}

// Table is an ordered collection of equal-length named columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New creates a table from columns. Column names must be unique and all
// columns must have the same length.
func New(columns ...*Column) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, ok := t.index[c.Name]; ok {
			return nil, &NameCollisionError{Name: c.Name}
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d values, want %d", c.Name, c.Len(), t.rows)
		}
		t.index[c.Name] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Columns returns the columns in order. The returned slice is a copy; the
// columns themselves are shared.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column named name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name}
	}
	return t.columns[i], nil
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

// WithColumn returns a copy of t with col appended.
func (t *Table) WithColumn(col *Column) (*Table, error) {
	if t.HasColumn(col.Name) {
		return nil, &NameCollisionError{Name: col.Name}
	}
	if len(t.columns) > 0 && col.Len() != t.rows {
		return nil, fmt.Errorf("column %q has %d values, want %d", col.Name, col.Len(), t.rows)
	}
	return New(append(t.Columns(), col)...)
}

// ReplaceColumn returns a copy of t with the named column swapped for col
// at the same position.
func (t *Table) ReplaceColumn(name string, col *Column) (*Table, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name}
	}
	if col.Name != name && t.HasColumn(col.Name) {
		return nil, &NameCollisionError{Name: col.Name}
	}
	columns := t.Columns()
	columns[i] = col
	return New(columns...)
}

// UniqueName returns base if no column uses it, otherwise the first of
// base_2, base_3, ... that is free.
func (t *Table) UniqueName(base string) string {
	if !t.HasColumn(base) {
		return base
	}
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s_%d", base, n)
		if !t.HasColumn(name) {
			return name
		}
	}
}

// selectRows returns a table holding only the given row indices, in order.
// Column types are carried over rather than re-inferred.
func (t *Table) selectRows(rows []int) (*Table, error) {
	columns := make([]*Column, len(t.columns))
	for j, c := range t.columns {
		values := make([]Value, len(rows))
		for k, r := range rows {
			values[k] = c.Values[r]
		}
		columns[j] = &Column{Name: c.Name, Type: c.Type, Values: values}
	}
	return New(columns...)
}
