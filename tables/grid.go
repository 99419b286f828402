package tables

import (
	"github.com/tsawler/stitch/model"
)

// GridCell is one position of a reconstructed grid. Filled is false for
// positions no cell reached.
type GridCell struct {
	Text   string
	Filled bool
}

// Grid is a dense row-major matrix built from nested markup. Every row has
// exactly Width cells.
type Grid struct {
	Width int
	Cells [][]GridCell
}

// RowCount returns the number of rows, including unfilled ones.
func (g *Grid) RowCount() int {
	return len(g.Cells)
}

// Get returns the cell at row, col, or an unfilled cell when out of range.
func (g *Grid) Get(row, col int) GridCell {
	if row < 0 || row >= len(g.Cells) || col < 0 || col >= g.Width {
		return GridCell{}
	}
	return g.Cells[row][col]
}

// Records returns the grid as strings, dropping rows in which no position
// was filled. Unfilled positions become empty strings.
func (g *Grid) Records() [][]string {
	out := make([][]string, 0, len(g.Cells))
	for _, row := range g.Cells {
		filled := false
		record := make([]string, g.Width)
		for j, cell := range row {
			if cell.Filled {
				filled = true
				record[j] = cell.Text
			}
		}
		if filled {
			out = append(out, record)
		}
	}
	return out
}

// Reconstruct resolves the row and column spans of a table's data cells
// into a dense grid. Header cells are not placed. Spans beyond the HTML
// limits are clamped.
func Reconstruct(t *model.Table) *Grid {
	return build(t, func(c model.Cell) bool { return !c.IsHeader })
}

// ReconstructHeaders resolves only the header cells of a table. The grid is
// as wide as the widest header row.
func ReconstructHeaders(t *model.Table) *Grid {
	return build(t, func(c model.Cell) bool { return c.IsHeader })
}

// build places the cells accepted by keep. The width is the widest row
// measured over accepted cells. For each cell the column cursor first skips
// positions already filled by a row span from above, then the cell's text
// is written to every position it spans, clipped to the width. Spans
// reaching below the last row add rows.
func build(t *model.Table, keep func(model.Cell) bool) *Grid {
	g := &Grid{}
	if t == nil {
		return g
	}

	for _, row := range t.Rows {
		w := 0
		for _, cell := range row {
			if keep(cell) {
				w += model.ClampColSpan(cell.ColSpan)
			}
		}
		if w > g.Width {
			g.Width = w
		}
	}

	ensure := func(n int) {
		for len(g.Cells) < n {
			g.Cells = append(g.Cells, make([]GridCell, g.Width))
		}
	}

	for r, row := range t.Rows {
		ensure(r + 1)

		col := 0
		for _, cell := range row {
			if !keep(cell) {
				continue
			}
			for col < g.Width && g.Cells[r][col].Filled {
				col++
			}
			if col >= g.Width {
				break
			}

			rowSpan := model.ClampRowSpan(cell.RowSpan)
			colSpan := model.ClampColSpan(cell.ColSpan)
			ensure(r + rowSpan)
			for i := 0; i < rowSpan; i++ {
				for j := 0; j < colSpan && col+j < g.Width; j++ {
					g.Cells[r+i][col+j] = GridCell{Text: cell.Text, Filled: true}
				}
			}
			col += colSpan
		}
	}

	return g
}
