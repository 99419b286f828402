package model

import (
	"fmt"
	"sort"
	"strings"
)

// Table represents nested markup: rows of cells that may span several rows
// or columns.
type Table struct {
	Rows    [][]Cell
	Caption string
}

// Cell represents a table cell
type Cell struct {
	Text     string
	RowSpan  int
	ColSpan  int
	IsHeader bool
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows: make([][]Cell, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i][j] = Cell{
				RowSpan: 1,
				ColSpan: 1,
			}
		}
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// MaxColumns returns the widest row, counting each cell's column span.
// Spans below one count as one.
func (t *Table) MaxColumns() int {
	maxCols := 0
	for _, row := range t.Rows {
		if w := rowWidth(row); w > maxCols {
			maxCols = w
		}
	}
	return maxCols
}

// RowHasHeader reports whether row i contains at least one header cell.
func (t *Table) RowHasHeader(i int) bool {
	if i < 0 || i >= len(t.Rows) {
		return false
	}
	for _, cell := range t.Rows[i] {
		if cell.IsHeader {
			return true
		}
	}
	return false
}

// AppendRows appends the given rows to the table.
func (t *Table) AppendRows(rows ...[]Cell) {
	t.Rows = append(t.Rows, rows...)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Caption: t.Caption, Rows: make([][]Cell, len(t.Rows))}
	for i, row := range t.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// SetCell sets the cell at the given position
func (t *Table) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Rows[row][col] = cell
	return nil
}

// ToMarkdown renders the table as a pipe table. Spanning cells are written
// once; the first row is treated as the header.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	width := t.MaxColumns()
	var sb strings.Builder

	writeRow := func(row []Cell) {
		sb.WriteString("|")
		n := 0
		for _, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(strings.ReplaceAll(cell.Text, "\n", " "))
			sb.WriteString(" |")
			n++
		}
		for ; n < width; n++ {
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(t.Rows[0])
	sb.WriteString("|")
	for j := 0; j < width; j++ {
		sb.WriteString(" - |")
	}
	sb.WriteString("\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}

	return sb.String()
}

func rowWidth(row []Cell) int {
	w := 0
	for _, cell := range row {
		w += ClampColSpan(cell.ColSpan)
	}
	return w
}

// Span limits of HTML tables. Larger rowspan or colspan values are clamped.
const (
	MaxRowSpan = 65534
	MaxColSpan = 1000
)

// ClampRowSpan bounds a row span to 1..MaxRowSpan.
func ClampRowSpan(n int) int {
	return min(spanOrOne(n), MaxRowSpan)
}

// ClampColSpan bounds a column span to 1..MaxColSpan.
func ClampColSpan(n int) int {
	return min(spanOrOne(n), MaxColSpan)
}

func spanOrOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// AnalyzedCell is one cell of a table as reported by the analysis provider,
// addressed by its top-left grid position.
type AnalyzedCell struct {
	Kind        string     `json:"kind,omitempty"`
	RowIndex    int        `json:"rowIndex"`
	ColumnIndex int        `json:"columnIndex"`
	RowSpan     int        `json:"rowSpan,omitempty"`
	ColumnSpan  int        `json:"columnSpan,omitempty"`
	Content     string     `json:"content"`
	Fragments   []Fragment `json:"spans,omitempty"`
}

// IsHeader reports whether the provider marked the cell as a header.
func (c AnalyzedCell) IsHeader() bool {
	return c.Kind == "columnHeader" || c.Kind == "rowHeader" || c.Kind == "stubHead"
}

// RawTable is one table object as reported by the analysis provider.
// Index is the table's position in the document's table list and stays
// its identity through every stage.
type RawTable struct {
	Index       int              `json:"-"`
	RowCount    int              `json:"rowCount"`
	ColumnCount int              `json:"columnCount"`
	Cells       []AnalyzedCell   `json:"cells,omitempty"`
	Fragments   []Fragment       `json:"spans"`
	Regions     []BoundingRegion `json:"boundingRegions"`
	Caption     string           `json:"-"`
}

// Span returns the union span of the table's fragments.
func (rt *RawTable) Span() Span {
	return UnionSpan(rt.Fragments)
}

// Page returns the lowest page number the table appears on, or 0 when the
// provider reported no regions.
func (rt *RawTable) Page() int {
	page := 0
	for i, r := range rt.Regions {
		if i == 0 || r.PageNumber < page {
			page = r.PageNumber
		}
	}
	return page
}

// Nested builds the provider's cell list into a Table. Cells are placed in
// each row by column index; positions covered by another cell's span are
// not materialised. It returns nil when the provider sent no cells.
func (rt *RawTable) Nested() *Table {
	if len(rt.Cells) == 0 {
		return nil
	}

	rows := rt.RowCount
	for _, c := range rt.Cells {
		if c.RowIndex+1 > rows {
			rows = c.RowIndex + 1
		}
	}

	byRow := make([][]AnalyzedCell, rows)
	for _, c := range rt.Cells {
		if c.RowIndex < 0 {
			continue
		}
		byRow[c.RowIndex] = append(byRow[c.RowIndex], c)
	}

	t := &Table{Rows: make([][]Cell, rows), Caption: rt.Caption}
	for i, cells := range byRow {
		sortByColumn(cells)
		row := make([]Cell, 0, len(cells))
		for _, c := range cells {
			row = append(row, Cell{
				Text:     c.Content,
				RowSpan:  ClampRowSpan(c.RowSpan),
				ColSpan:  ClampColSpan(c.ColumnSpan),
				IsHeader: c.IsHeader(),
			})
		}
		t.Rows[i] = row
	}
	return t
}

func sortByColumn(cells []AnalyzedCell) {
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].ColumnIndex < cells[j].ColumnIndex
	})
}
