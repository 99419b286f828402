package columns

import (
	"fmt"
	"strings"
)

// Column is one typed column of a frame.
type Column struct {
	Name string
	Kind Kind

	// Integer is set on numeric columns whose values are all integral.
	Integer bool

	Values []Value
}

// Strings renders every value of the column for export.
func (c Column) Strings() []string {
	out := make([]string, len(c.Values))
	for i, v := range c.Values {
		out[i] = v.Format(c.Kind, c.Integer)
	}
	return out
}

// Nulls returns the number of null values.
func (c Column) Nulls() int {
	n := 0
	for _, v := range c.Values {
		if !v.Valid {
			n++
		}
	}
	return n
}

// Frame is a flattened table: named, independently typed columns of equal
// length.
type Frame struct {
	Name    string
	Title   string
	Columns []Column
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.Columns) == 0 {
		return 0
	}
	return len(f.Columns[0].Values)
}

// Header returns the column names.
func (f *Frame) Header() []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Name
	}
	return out
}

// Rows returns the frame row by row as export strings.
func (f *Frame) Rows() [][]string {
	rows := make([][]string, f.Len())
	for i := range rows {
		rows[i] = make([]string, len(f.Columns))
	}
	for j, c := range f.Columns {
		for i, s := range c.Strings() {
			rows[i][j] = s
		}
	}
	return rows
}

// Flatten builds a frame from grid records, one label per column. Each
// column is typed with typer. Records shorter than the label list are
// padded with empty values.
func Flatten(name string, records [][]string, labels []string, typer Typer) (*Frame, error) {
	width := 0
	for _, r := range records {
		if len(r) > width {
			width = len(r)
		}
	}
	if len(records) > 0 && len(labels) != width {
		return nil, fmt.Errorf("flatten %s: %d labels for %d columns", name, len(labels), width)
	}

	frame := &Frame{Name: name, Columns: make([]Column, len(labels))}
	for j, label := range labels {
		values := make([]string, len(records))
		for i, r := range records {
			if j < len(r) {
				values[i] = strings.TrimSpace(r[j])
			}
		}
		frame.Columns[j] = typer.Type(label, values)
	}
	return frame, nil
}
