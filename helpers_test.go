package stitch

import (
	"strings"

	"github.com/tsawler/stitch/model"
)

const (
	pageBreak = "\n<!-- PageBreak -->\n\n"

	inventoryA = "<table><tr><th>Item</th><th>Count</th></tr><tr><td>bolts</td><td>10</td></tr><tr><td>nuts</td><td>25</td></tr></table>"
	inventoryB = "<table><tr><th>Item</th><th>Count</th></tr><tr><td>washers</td><td>1,200</td></tr></table>"
	pricesC    = "<table><tr><th>Date</th><th>Price</th></tr><tr><td>2024-01-31</td><td>(3.50)</td></tr></table>"
)

// testDoc lays out pages of content with tables and paragraphs addressed
// by offset, the way the analysis adapter produces them.
type testDoc struct {
	doc *model.Document
	sb  strings.Builder
}

func newTestDoc(name string) *testDoc {
	return &testDoc{doc: model.NewDocument(name)}
}

func (d *testDoc) text(s string) *testDoc {
	d.sb.WriteString(s)
	return d
}

func (d *testDoc) table(page, cols int, markup string) *testDoc {
	offset := d.sb.Len()
	d.sb.WriteString(markup)
	d.doc.AddTable(model.RawTable{
		ColumnCount: cols,
		Fragments:   []model.Fragment{{Offset: offset, Length: len(markup)}},
		Regions:     []model.BoundingRegion{{PageNumber: page}},
	})
	return d
}

func (d *testDoc) paragraph(page int, role model.Role, text string) *testDoc {
	offset := d.sb.Len()
	d.sb.WriteString(text)
	d.doc.AddParagraph(model.Paragraph{
		Text:      text,
		Role:      role,
		Fragments: []model.Fragment{{Offset: offset, Length: len(text)}},
		Regions:   []model.BoundingRegion{{PageNumber: page}},
	})
	return d
}

func (d *testDoc) build() *model.Document {
	d.doc.Content = d.sb.String()
	return d.doc
}

// splitInventory is one table split over pages 1 and 2 followed by a
// separate table on page 3 behind a paragraph.
func splitInventory(name string) *model.Document {
	return newTestDoc(name).
		paragraph(1, model.RoleTitle, "Inventory").
		text("\n").
		table(1, 2, inventoryA).
		text(pageBreak).
		table(2, 2, inventoryB).
		text(pageBreak).
		paragraph(3, model.RoleNone, "Prices changed during the year.").
		text("\n").
		table(3, 2, pricesC).
		build()
}
