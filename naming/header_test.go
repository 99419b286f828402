package naming

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestHeader_ColumnNames(t *testing.T) {
	h := NewHeader()
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		count   int
		want    []string
		wantErr error
	}{
		{
			name:    "single header row",
			content: "<table><tr><th>Region</th><th>Amount</th></tr><tr><td>N</td><td>1</td></tr></table>",
			count:   2,
			want:    []string{"Region", "Amount"},
		},
		{
			name: "stacked header rows",
			content: `<table>
				<tr><th rowspan="2">Region</th><th colspan="2">Revenue</th></tr>
				<tr><th>2023</th><th>2024</th></tr>
				<tr><td>N</td><td>1</td><td>2</td></tr></table>`,
			count: 3,
			want:  []string{"Region", "Revenue 2023", "Revenue 2024"},
		},
		{
			name:    "pipe table",
			content: "| Region | Amount |\n| - | - |\n| N | 1 |",
			count:   2,
			want:    []string{"Region", "Amount"},
		},
		{
			name:    "width mismatch",
			content: "<table><tr><th>Region</th></tr><tr><td>N</td><td>1</td></tr></table>",
			count:   2,
			wantErr: ErrLabelCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.ColumnNames(ctx, tt.count, tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ColumnNames failed: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("ColumnNames = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeader_NoHeaderCells(t *testing.T) {
	_, err := NewHeader().ColumnNames(context.Background(), 1, "<table><tr><td>1</td></tr></table>")
	if err == nil {
		t.Error("expected error for a table without header cells")
	}
}

func TestHeader_TableName(t *testing.T) {
	h := NewHeader()

	if name, err := h.TableName(context.Background(), "Revenue", ""); err != nil || name != "Revenue" {
		t.Errorf("TableName = %q, %v", name, err)
	}
	if _, err := h.TableName(context.Background(), " ", ""); err == nil {
		t.Error("expected error for an empty title")
	}

	res := Resolve(context.Background(), h, Request{Fallback: "standalone_0", Columns: 1,
		Content: "<table><tr><th>Qty</th></tr><tr><td>1</td></tr></table>"})
	if res.Table != "standalone_0" || res.Columns[0] != "Qty" {
		t.Errorf("Resolve = %+v", res)
	}
}
