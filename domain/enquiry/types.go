// Package enquiry holds the row-level types shared by the row sources, the
// metrics engine and the display layer.
package enquiry

import (
	"sort"
	"strconv"
)

// Record is one worksheet row: column name to raw cell text
type Record map[string]string

// Sheet is the raw input handed over by a row source.
// Headers keeps the worksheet column order; Records keep source row order.
type Sheet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	Records []Record `json:"records"`
}

// Columns returns the column names of the sheet in a deterministic order:
// the declared headers first, then any key that only appears in records,
// in order of first appearance (keys of a single record are taken sorted).
func (s *Sheet) Columns() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Headers))
	cols := make([]string, 0, len(s.Headers))
	for _, h := range s.Headers {
		if seen[h] {
			continue
		}
		seen[h] = true
		cols = append(cols, h)
	}
	for _, rec := range s.Records {
		var extra []string
		for k := range rec {
			if !seen[k] {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			seen[k] = true
			cols = append(cols, k)
		}
	}
	return cols
}

// ValueType tells whether a cleaned cell holds text or a number
type ValueType string

const (
	ValueTypeText    ValueType = "text"
	ValueTypeNumeric ValueType = "numeric"
)

// Value is a cleaned cell
type Value struct {
	Type   ValueType `json:"type"`
	Text   string    `json:"text,omitempty"`
	Number float64   `json:"number"`
}

// NewTextValue creates a text cell
func NewTextValue(s string) Value {
	return Value{Type: ValueTypeText, Text: s}
}

// NewNumericValue creates a numeric cell
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, Number: n}
}

// IsNumeric reports whether the cell was coerced to a number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric
}

// String renders the cell for tabular display
func (v Value) String() string {
	if v.IsNumeric() {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// Row is one cleaned row. A column missing from the source row is absent here too.
type Row map[string]Value

// Table is the cleaned enquiry table
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Cell returns the cell at row i for the column and whether it exists
func (t *Table) Cell(i int, column string) (Value, bool) {
	v, ok := t.Rows[i][column]
	return v, ok
}
