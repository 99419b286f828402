package stitch

import (
	"fmt"
	"strings"

	"github.com/tsawler/stitch/tables"
)

// Warning is a non-fatal problem found while processing a document. Table
// is the raw table index, or -1 when the problem concerns the whole
// document.
type Warning struct {
	Document string `json:"document" yaml:"document"`
	Table    int    `json:"table" yaml:"table"`
	Message  string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	if w.Table < 0 {
		return fmt.Sprintf("%s: %s", w.Document, w.Message)
	}
	return fmt.Sprintf("%s: table %d: %s", w.Document, w.Table, w.Message)
}

// FormatWarnings returns warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

func fromTables(document string, in []tables.Warning) []Warning {
	out := make([]Warning, len(in))
	for i, w := range in {
		out[i] = Warning{Document: document, Table: w.Table, Message: w.Message}
	}
	return out
}
