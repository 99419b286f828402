package tables

import (
	"fmt"
	"strings"

	"github.com/tsawler/stitch/model"
)

// LinearCombiner joins linear markup fragments of one logical table.
type LinearCombiner struct {
	BorderSymbol        string
	HeaderSeparatorCell string
}

// NewLinearCombiner creates a combiner using the configured symbols.
func NewLinearCombiner(cfg Config) *LinearCombiner {
	return &LinearCombiner{
		BorderSymbol:        cfg.BorderSymbol,
		HeaderSeparatorCell: cfg.HeaderSeparatorCell,
	}
}

// IsHeaderSeparator reports whether line is an alignment row: split on the
// separator cell content, the pieces are all the border symbol.
func (lc *LinearCombiner) IsHeaderSeparator(line string) bool {
	pieces := strings.Split(line, lc.HeaderSeparatorCell)
	for _, p := range pieces {
		if p != lc.BorderSymbol {
			return false
		}
	}
	return true
}

// StripHeaderSeparator removes every alignment row from markup. Each kept
// line ends with a newline.
func (lc *LinearCombiner) StripHeaderSeparator(markup string) string {
	var sb strings.Builder
	for _, line := range splitLines(markup) {
		if lc.IsHeaderSeparator(line) {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ColumnCount returns the number of cells in a linear row: the border
// pieces minus the two outer edges. Markup without borders yields -1.
func (lc *LinearCombiner) ColumnCount(row string) int {
	return len(strings.Split(row, lc.BorderSymbol)) - 2
}

// Combine appends the rows of next beneath the rows of prev, dropping the
// alignment row of next. Both fragments must agree on the column count of
// their first row.
func (lc *LinearCombiner) Combine(prev, next string) (string, error) {
	rows1 := splitLines(strings.TrimSpace(prev))
	rows2 := splitLines(strings.TrimSpace(lc.StripHeaderSeparator(next)))

	switch {
	case len(rows2) == 0:
		return strings.Join(rows1, "\n"), nil
	case len(rows1) == 0:
		return strings.Join(rows2, "\n"), nil
	}

	cols1 := lc.ColumnCount(rows1[0])
	cols2 := lc.ColumnCount(rows2[0])
	if cols1 != cols2 {
		return "", fmt.Errorf("%w: %d and %d", ErrColumnMismatch, cols1, cols2)
	}

	merged := make([]string, 0, len(rows1)+len(rows2))
	merged = append(merged, rows1...)
	merged = append(merged, rows2...)
	return strings.Join(merged, "\n"), nil
}

// ParseLinear parses pipe-table markup into a Table. The first row is marked
// as header; alignment rows are dropped. Lines that are not table rows are
// ignored.
func (lc *LinearCombiner) ParseLinear(markup string) *model.Table {
	table := &model.Table{Rows: make([][]model.Cell, 0)}
	for _, line := range splitLines(markup) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, lc.BorderSymbol) || lc.IsHeaderSeparator(line) {
			continue
		}

		pieces := strings.Split(line, lc.BorderSymbol)
		if len(pieces) < 3 {
			continue
		}
		pieces = pieces[1 : len(pieces)-1]

		header := len(table.Rows) == 0
		row := make([]model.Cell, len(pieces))
		for j, p := range pieces {
			row[j] = model.Cell{
				Text:     strings.TrimSpace(p),
				RowSpan:  1,
				ColSpan:  1,
				IsHeader: header,
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
