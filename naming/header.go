package naming

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/stitch/htmldoc"
	"github.com/tsawler/stitch/model"
	"github.com/tsawler/stitch/tables"
)

// Header names tables without a model: the table name is its title and the
// column names are read from the header cells of its markup. Stacked
// header rows are joined with a space.
type Header struct {
	linear *tables.LinearCombiner
}

// NewHeader creates an offline namer.
func NewHeader() *Header {
	return &Header{linear: tables.NewLinearCombiner(tables.DefaultConfig())}
}

// TableName returns the title.
func (h *Header) TableName(_ context.Context, title, _ string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", errors.New("table has no title")
	}
	return title, nil
}

// ColumnNames returns the header labels of the first table in content.
func (h *Header) ColumnNames(_ context.Context, count int, content string) ([]string, error) {
	table := h.parse(content)
	if table == nil {
		return nil, errors.New("no table in content")
	}

	grid := tables.ReconstructHeaders(table)
	if grid.Width == 0 {
		return nil, errors.New("table has no header cells")
	}
	if grid.Width != count {
		return nil, fmt.Errorf("%w: header has %d columns, want %d", ErrLabelCount, grid.Width, count)
	}

	labels := make([]string, grid.Width)
	for j := range labels {
		var parts []string
		for i := 0; i < grid.RowCount(); i++ {
			text := strings.TrimSpace(grid.Get(i, j).Text)
			if text == "" || (len(parts) > 0 && parts[len(parts)-1] == text) {
				continue
			}
			parts = append(parts, text)
		}
		labels[j] = strings.Join(parts, " ")
	}
	return labels, nil
}

func (h *Header) parse(content string) *model.Table {
	if t, err := htmldoc.ParseTable(content); err == nil {
		return t
	}
	if t := h.linear.ParseLinear(content); t.RowCount() > 0 {
		return t
	}
	return nil
}

var _ Namer = (*Header)(nil)
