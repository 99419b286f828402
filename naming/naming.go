// Package naming produces display names for reconstructed tables and their
// columns.
//
// A [Namer] is usually backed by a language model. Its answers are never
// trusted: [Resolve] checks them and falls back to generic names, so a
// table is always exported even when naming fails.
package naming

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrLabelCount is returned when a namer produces a different number of
// column names than requested.
var ErrLabelCount = errors.New("wrong number of column names")

// Namer names tables and columns.
type Namer interface {
	// TableName returns a short name for a table with the given title and
	// nested markup.
	TableName(ctx context.Context, title, content string) (string, error)

	// ColumnNames returns exactly count column names for a table.
	ColumnNames(ctx context.Context, count int, content string) ([]string, error)
}

// Request describes one table to name.
type Request struct {
	// Fallback is the name used when the namer fails, e.g. "merged_0".
	Fallback string
	Title    string
	Content  string
	Columns  int
}

// Result holds the names chosen for a table. Reasons lists why fallbacks
// were used.
type Result struct {
	Table   string
	Columns []string
	Reasons []string
}

// GenericColumns returns Column_1 .. Column_n.
func GenericColumns(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Column_%d", i+1)
	}
	return out
}

// Resolve names a table with n. A failed or empty table name falls back to
// req.Fallback; a failed column naming, or one returning the wrong number
// of names, falls back to generic column names. A nil namer uses the
// fallbacks directly.
func Resolve(ctx context.Context, n Namer, req Request) Result {
	res := Result{Table: req.Fallback, Columns: GenericColumns(req.Columns)}
	if n == nil {
		return res
	}

	name, err := n.TableName(ctx, req.Title, req.Content)
	switch {
	case err != nil:
		res.Reasons = append(res.Reasons, fmt.Sprintf("table name: %v", err))
	case SanitizeName(name) == "":
		res.Reasons = append(res.Reasons, "table name: empty answer")
	default:
		res.Table = SanitizeName(name)
	}

	if req.Columns == 0 {
		return res
	}

	labels, err := n.ColumnNames(ctx, req.Columns, req.Content)
	if err == nil && len(labels) != req.Columns {
		err = fmt.Errorf("%w: got %d, want %d", ErrLabelCount, len(labels), req.Columns)
	}
	if err != nil {
		res.Reasons = append(res.Reasons, fmt.Sprintf("column names: %v", err))
		return res
	}
	res.Columns = dedupe(labels)
	return res
}

var unsafeName = regexp.MustCompile(`[^\w\-.]+`)

// maxNameLen bounds generated file and sheet names.
const maxNameLen = 80

// SanitizeName turns a model answer into a file-safe name: whitespace
// becomes underscores, anything else unsafe is removed, and the result is
// trimmed of separators.
func SanitizeName(s string) string {
	s = strings.TrimSpace(firstLine(s))
	s = strings.Trim(s, "\"'`")
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeName.ReplaceAllString(s, "")
	s = strings.Trim(s, "_-.")
	for len(s) > maxNameLen {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}

// ParseColumnList splits a comma-separated model answer into names.
func ParseColumnList(answer string) []string {
	answer = strings.TrimSpace(firstLine(answer))
	if answer == "" {
		return nil
	}
	parts := strings.Split(answer, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.Trim(strings.TrimSpace(p), "\"'`")
	}
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// dedupe makes labels unique and non-empty by suffixing repeats.
func dedupe(labels []string) []string {
	out := make([]string, len(labels))
	seen := make(map[string]int, len(labels))
	for i, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			l = fmt.Sprintf("Column_%d", i+1)
		}
		if n := seen[l]; n > 0 {
			seen[l] = n + 1
			l = fmt.Sprintf("%s_%d", l, n+1)
		} else {
			seen[l] = 1
		}
		out[i] = l
	}
	return out
}
