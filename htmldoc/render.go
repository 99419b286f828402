package htmldoc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/stitch/model"
)

// Render writes a table as nested markup. Spans of one are omitted.
func Render(t *model.Table) string {
	var sb strings.Builder
	if err := html.Render(&sb, TableNode(t)); err != nil {
		// Rendering into a strings.Builder cannot fail.
		return ""
	}
	return sb.String()
}

// TableNode builds the HTML node tree for a table.
func TableNode(t *model.Table) *html.Node {
	table := element(atom.Table)
	if t.Caption != "" {
		caption := element(atom.Caption)
		caption.AppendChild(&html.Node{Type: html.TextNode, Data: t.Caption})
		table.AppendChild(caption)
	}

	for _, row := range t.Rows {
		table.AppendChild(RowNode(row))
	}
	return table
}

// RowNode builds a tr element for one row of cells.
func RowNode(row []model.Cell) *html.Node {
	tr := element(atom.Tr)
	for _, cell := range row {
		a := atom.Td
		if cell.IsHeader {
			a = atom.Th
		}
		td := element(a)
		if cell.RowSpan > 1 {
			td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: strconv.Itoa(cell.RowSpan)})
		}
		if cell.ColSpan > 1 {
			td.Attr = append(td.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(cell.ColSpan)})
		}
		if cell.Text != "" {
			td.AppendChild(&html.Node{Type: html.TextNode, Data: cell.Text})
		}
		tr.AppendChild(td)
	}
	return tr
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}
