package columns

import (
	"strconv"
	"time"
)

// Kind is the inferred type of a column.
type Kind int

const (
	Text Kind = iota
	Numeric
	Temporal
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Temporal:
		return "temporal"
	default:
		return "text"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DateLayout is the layout temporal values are written with.
const DateLayout = "2006-01-02"

// Value is one typed cell. Valid is false for nulls. Only the field that
// matches the column's kind is set.
type Value struct {
	Valid  bool
	Number float64
	Time   time.Time
	Text   string
}

// Null is the null value.
var Null = Value{}

// Format renders the value for export. Integer columns are written without
// a fractional part; nulls are empty.
func (v Value) Format(kind Kind, integer bool) string {
	if !v.Valid {
		return ""
	}
	switch kind {
	case Numeric:
		if integer {
			return strconv.FormatInt(int64(v.Number), 10)
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case Temporal:
		return v.Time.Format(DateLayout)
	default:
		return v.Text
	}
}

// Native returns the value as a Go value suitable for a database driver:
// int64, float64, time.Time, string, or nil for a null.
func (v Value) Native(kind Kind, integer bool) any {
	if !v.Valid {
		return nil
	}
	switch kind {
	case Numeric:
		if integer {
			return int64(v.Number)
		}
		return v.Number
	case Temporal:
		return v.Time
	default:
		return v.Text
	}
}
