package columns

import (
	"testing"
	"time"
)

func TestTyper_Thresholds(t *testing.T) {
	typer := NewTyper()

	tests := []struct {
		name    string
		values  []string
		kind    Kind
		integer bool
		nulls   int
	}{
		{"three of four numbers", []string{"1,000", "2,500", "N/A", "3,000"}, Numeric, true, 1},
		{"one of four numbers", []string{"1,000", "x", "y", "z"}, Text, false, 0},
		{"decimals", []string{"1.5", "2", "3.25"}, Numeric, false, 0},
		{"accounting negatives", []string{"(500)", "1,200", "300"}, Numeric, true, 0},
		{"dates", []string{"01/15/2024", "02/20/2024", "2024-03-01", "tbd"}, Temporal, false, 1},
		{"mostly text", []string{"north", "south", "12/01/2024"}, Text, false, 0},
		{"empty cells count against the share", []string{"1", "2", "", ""}, Text, false, 0},
		{"full-width digits", []string{"１２３", "４５６"}, Numeric, true, 0},
		{"integers beyond float precision", []string{"99999999999999999999", "1", "2"}, Numeric, false, 0},
		{"largest exact integer", []string{"9007199254740992", "-9007199254740992"}, Numeric, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := typer.Type("c", tt.values)

			if col.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", col.Kind, tt.kind)
			}
			if col.Integer != tt.integer {
				t.Errorf("integer = %v, want %v", col.Integer, tt.integer)
			}
			if got := col.Nulls(); got != tt.nulls {
				t.Errorf("nulls = %d, want %d", got, tt.nulls)
			}
			if len(col.Values) != len(tt.values) {
				t.Errorf("rows = %d, want %d", len(col.Values), len(tt.values))
			}
		})
	}
}

func TestTyper_LargeValuesKeepMagnitude(t *testing.T) {
	col := NewTyper().Type("n", []string{"99999999999999999999", "1", "2"})

	got := col.Strings()
	if got[0] != "100000000000000000000" {
		t.Errorf("large value rendered as %q", got[0])
	}
	if v, ok := col.Values[0].Native(col.Kind, col.Integer).(float64); !ok || v != 1e20 {
		t.Errorf("native value = %v (%T)", col.Values[0].Native(col.Kind, col.Integer), col.Values[0].Native(col.Kind, col.Integer))
	}
}

func TestTyper_ThresholdIsInclusive(t *testing.T) {
	typer := Typer{NumericThreshold: 0.75, TemporalThreshold: 0.75}

	col := typer.Type("c", []string{"1", "2", "3", "x"})
	if col.Kind != Numeric {
		t.Errorf("kind = %s, want numeric at exactly the threshold", col.Kind)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,000", 1000, true},
		{" 42 ", 42, true},
		{"(1,250.50)", -1250.5, true},
		{"-3", -3, true},
		{"−7", -7, true},
		{"1e3", 1000, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"()", 0, false},
		{"NaN", 0, false},
		{"12%", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024/3/1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"03/01/2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"31/12/2023", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"1-2-99", time.Date(1999, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"5/6/24 extra", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), true},
		{"13/13/2024", time.Time{}, false},
		{"March 1", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok || (ok && !got.Equal(tt.want)) {
			t.Errorf("ParseDate(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValue_Format(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   Value
		kind    Kind
		integer bool
		want    string
	}{
		{"integer", Value{Valid: true, Number: 1000}, Numeric, true, "1000"},
		{"float", Value{Valid: true, Number: 2.5}, Numeric, false, "2.5"},
		{"date", Value{Valid: true, Time: ts}, Temporal, false, "2024-03-01"},
		{"text", Value{Valid: true, Text: "abc"}, Text, false, "abc"},
		{"null", Null, Numeric, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Format(tt.kind, tt.integer); got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}
		})
	}

	if got := Null.Native(Text, false); got != nil {
		t.Errorf("null Native = %v, want nil", got)
	}
	if got := (Value{Valid: true, Number: 3}).Native(Numeric, true); got != int64(3) {
		t.Errorf("integer Native = %#v", got)
	}
}
