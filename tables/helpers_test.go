package tables

import (
	"strings"

	"github.com/tsawler/stitch/model"
)

// docBuilder lays out content the way an analysis provider reports it: one
// content buffer with entities addressed by offset.
type docBuilder struct {
	doc *model.Document
	sb  strings.Builder
}

func newDocBuilder(name string) *docBuilder {
	return &docBuilder{doc: model.NewDocument(name)}
}

func (b *docBuilder) text(s string) *docBuilder {
	b.sb.WriteString(s)
	return b
}

func (b *docBuilder) table(page, cols int, markup string) *docBuilder {
	offset := b.sb.Len()
	b.sb.WriteString(markup)
	b.doc.AddTable(model.RawTable{
		ColumnCount: cols,
		Fragments:   []model.Fragment{{Offset: offset, Length: len(markup)}},
		Regions:     []model.BoundingRegion{{PageNumber: page}},
	})
	return b
}

// emptyTable adds a table the provider reported without fragments.
func (b *docBuilder) emptyTable(page, cols int) *docBuilder {
	b.doc.AddTable(model.RawTable{
		ColumnCount: cols,
		Regions:     []model.BoundingRegion{{PageNumber: page}},
	})
	return b
}

func (b *docBuilder) paragraph(page int, role model.Role, text string) *docBuilder {
	offset := b.sb.Len()
	b.sb.WriteString(text)
	b.doc.AddParagraph(model.Paragraph{
		Text:      text,
		Role:      role,
		Fragments: []model.Fragment{{Offset: offset, Length: len(text)}},
		Regions:   []model.BoundingRegion{{PageNumber: page}},
	})
	return b
}

func (b *docBuilder) build() *model.Document {
	b.doc.Content = b.sb.String()
	return b.doc
}

const (
	pipeA = "| Name | Qty |\n| - | - |\n| a | 1 |\n"
	pipeB = "| Name | Qty |\n| - | - |\n| b | 2 |\n"
	pipeC = "| Name | Qty |\n| - | - |\n| c | 3 |\n"
)

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
