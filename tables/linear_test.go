package tables

import (
	"errors"
	"strings"
	"testing"
)

func TestLinearCombiner_IsHeaderSeparator(t *testing.T) {
	lc := NewLinearCombiner(DefaultConfig())

	tests := []struct {
		line string
		want bool
	}{
		{"| - | - |", true},
		{"| - | - | - |", true},
		{"| a | b |", false},
		{"|---|---|", false},
		{"| - | x |", false},
	}

	for _, tt := range tests {
		if got := lc.IsHeaderSeparator(tt.line); got != tt.want {
			t.Errorf("IsHeaderSeparator(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestLinearCombiner_ColumnCount(t *testing.T) {
	lc := NewLinearCombiner(DefaultConfig())

	tests := []struct {
		row  string
		want int
	}{
		{"| a | b |", 2},
		{"| a | b | c |", 3},
		{"| |", 1},
		{"<table><tr><td>a</td></tr></table>", -1},
	}

	for _, tt := range tests {
		if got := lc.ColumnCount(tt.row); got != tt.want {
			t.Errorf("ColumnCount(%q) = %d, want %d", tt.row, got, tt.want)
		}
	}
}

func TestLinearCombiner_Combine(t *testing.T) {
	lc := NewLinearCombiner(DefaultConfig())

	got, err := lc.Combine(pipeA, pipeB)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}

	want := "| Name | Qty |\n| - | - |\n| a | 1 |\n| Name | Qty |\n| b | 2 |"
	if got != want {
		t.Errorf("Combine =\n%s\nwant\n%s", got, want)
	}
}

func TestLinearCombiner_StripsAlignmentRow(t *testing.T) {
	lc := NewLinearCombiner(DefaultConfig())

	got, err := lc.Combine("| 1 | 2 |", "| - | - |\n| 3 | 4 |")
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 data rows, got %d: %q", len(lines), got)
	}
	for _, line := range lines {
		if lc.IsHeaderSeparator(line) {
			t.Errorf("alignment row survived: %q", got)
		}
	}
}

func TestLinearCombiner_ColumnMismatch(t *testing.T) {
	lc := NewLinearCombiner(DefaultConfig())

	_, err := lc.Combine(pipeA, "| a | b | c |\n| 1 | 2 | 3 |")
	if !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}
}

func TestLinearCombiner_EmptySide(t *testing.T) {
	lc := NewLinearCombiner(DefaultConfig())

	got, err := lc.Combine("", pipeB)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if strings.Contains(got, "| - |") {
		t.Errorf("alignment row of the only fragment kept: %q", got)
	}

	got, err = lc.Combine(pipeA, "\n")
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if got != strings.TrimSpace(pipeA) {
		t.Errorf("Combine with empty next = %q", got)
	}
}

func TestLinearCombiner_MarkupTables(t *testing.T) {
	lc := NewLinearCombiner(DefaultConfig())

	a := "<table><tr><td>1</td></tr></table>"
	b := "<table><tr><td>2</td></tr></table>"
	got, err := lc.Combine(a, b)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if got != a+"\n"+b {
		t.Errorf("Combine = %q", got)
	}
}

func TestLinearCombiner_ParseLinear(t *testing.T) {
	lc := NewLinearCombiner(DefaultConfig())

	table := lc.ParseLinear("Some text\n" + pipeA + "| b | 2 |\n")

	if table.RowCount() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.RowCount())
	}
	if !table.RowHasHeader(0) || table.RowHasHeader(1) {
		t.Error("expected only the first row to be a header")
	}
	if c := table.GetCell(2, 1); c == nil || c.Text != "2" {
		t.Errorf("cell (2,1) = %+v", c)
	}
}
