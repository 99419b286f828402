package columns

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Default share of values that must parse for a column to take a type.
const (
	DefaultNumericThreshold  = 0.7
	DefaultTemporalThreshold = 0.7
)

var datePattern = regexp.MustCompile(`^(\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}[-/]\d{1,2}[-/]\d{1,2})`)

// Month-first layouts are tried before day-first ones.
var dateLayouts = []string{
	"2006-1-2", "2006/1/2",
	"1/2/2006", "1-2-2006", "1/2/06", "1-2-06",
	"2/1/2006", "2-1-2006", "2/1/06", "2-1-06",
}

// maxExactInteger is the largest magnitude below which every integer is
// exactly representable as a float64.
const maxExactInteger = 1 << 53

// exactInteger reports whether n is integral and converts to int64 without
// loss.
func exactInteger(n float64) bool {
	return n == math.Trunc(n) && math.Abs(n) <= maxExactInteger
}

// Typer infers column types.
type Typer struct {
	NumericThreshold  float64
	TemporalThreshold float64
}

// NewTyper returns a typer with the default thresholds.
func NewTyper() Typer {
	return Typer{
		NumericThreshold:  DefaultNumericThreshold,
		TemporalThreshold: DefaultTemporalThreshold,
	}
}

// Type infers the kind of values and converts them. The share of parseable
// values is measured over all values, empty ones included.
func (t Typer) Type(name string, values []string) Column {
	col := Column{Name: name, Kind: Text, Values: make([]Value, len(values))}

	numbers := make([]Value, len(values))
	parsed := 0
	for i, v := range values {
		if n, ok := ParseNumber(v); ok {
			numbers[i] = Value{Valid: true, Number: n}
			parsed++
		}
	}
	if share(parsed, len(values)) >= t.NumericThreshold {
		col.Kind = Numeric
		col.Values = numbers
		col.Integer = parsed > 0
		for _, v := range numbers {
			if v.Valid && !exactInteger(v.Number) {
				col.Integer = false
				break
			}
		}
		return col
	}

	matched := 0
	for _, v := range values {
		if datePattern.MatchString(v) {
			matched++
		}
	}
	if share(matched, len(values)) >= t.TemporalThreshold {
		col.Kind = Temporal
		for i, v := range values {
			if ts, ok := ParseDate(v); ok {
				col.Values[i] = Value{Valid: true, Time: ts}
			}
		}
		return col
	}

	for i, v := range values {
		col.Values[i] = Value{Valid: true, Text: v}
	}
	return col
}

// ParseNumber parses a cell as a number. The text is NFKC-normalised and
// thousands separators are removed. A value wrapped in parentheses is
// negative, as in accounting notation.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(norm.NFKC.String(s))
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.ReplaceAll(s, ",", "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
	}
	s = strings.TrimSpace(strings.NewReplacer("(", "", ")", "").Replace(s))
	if s == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

// ParseDate parses the leading date of a cell. Year-first dates are read
// as year, month, day; other dates month-first, then day-first when the
// month-first reading is not a valid date. Two-digit years follow the
// time package: 69 and above are 19xx, the rest 20xx.
func ParseDate(s string) (time.Time, bool) {
	m := datePattern.FindString(strings.TrimSpace(s))
	if m == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, m); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
