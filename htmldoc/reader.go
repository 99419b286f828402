// Package htmldoc reads and writes nested table markup.
//
// Analysis providers embed tables in the content buffer as HTML. This
// package turns such markup into [model.Table] values, keeping header cells
// and row/column spans, and renders tables back to markup.
package htmldoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/stitch/model"
)

// ErrNoTable is returned when markup contains no table element.
var ErrNoTable = errors.New("no table element found")

// ParseTables parses every top-level table element in markup, in document
// order. Tables nested inside a cell are part of that cell's text.
func ParseTables(markup string) ([]*model.Table, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var tables []*model.Table
	for _, n := range nodes {
		collectTables(n, &tables)
	}
	return tables, nil
}

// ParseTable parses the first table element in markup.
func ParseTable(markup string) (*model.Table, error) {
	tables, err := ParseTables(markup)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTable
	}
	return tables[0], nil
}

func collectTables(n *html.Node, out *[]*model.Table) {
	if n.Type == html.ElementNode && n.Data == "table" {
		*out = append(*out, TableFromNode(n))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTables(c, out)
	}
}

// TableFromNode extracts a table from an HTML table element.
func TableFromNode(tableNode *html.Node) *model.Table {
	table := &model.Table{
		Rows: make([][]model.Cell, 0),
	}

	// Find thead, tbody, tfoot, caption or direct tr children
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "caption":
			table.Caption = getTextContent(c)
		case "thead":
			parseTableRows(c, table, true)
		case "tbody", "tfoot":
			parseTableRows(c, table, false)
		case "tr":
			table.Rows = append(table.Rows, parseTableRow(c, false))
		}
	}

	return table
}

// parseTableRows parses rows within thead, tbody or tfoot.
func parseTableRows(section *html.Node, table *model.Table, isHeader bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			table.Rows = append(table.Rows, parseTableRow(c, isHeader))
		}
	}
}

// parseTableRow parses a single table row. Empty rows are kept so that row
// spans from earlier rows still line up.
func parseTableRow(tr *html.Node, isHeader bool) []model.Cell {
	row := make([]model.Cell, 0)

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, model.Cell{
				Text:     getTextContent(c),
				IsHeader: isHeader || c.Data == "th",
				RowSpan:  model.ClampRowSpan(spanAttr(c, "rowspan")),
				ColSpan:  model.ClampColSpan(spanAttr(c, "colspan")),
			})
		}
	}

	return row
}

// spanAttr reads a rowspan or colspan attribute. Missing, malformed or
// non-positive values count as one. Callers clamp the upper bound.
func spanAttr(n *html.Node, key string) int {
	v := getAttr(n, key)
	if v == "" {
		return 1
	}
	span, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || span < 1 {
		return 1
	}
	return span
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "template":
			return
		case "br":
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "tr":
			result.WriteString(" ")
		}
	}
}
