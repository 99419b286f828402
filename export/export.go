// Package export writes typed frames to their destinations.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/tsawler/stitch/columns"
)

// Sink receives the frames of one or more documents. Write may be called
// for several documents; Close flushes anything buffered.
type Sink interface {
	Write(ctx context.Context, document string, frame *columns.Frame) error
	Close() error
}

var nonWord = regexp.MustCompile(`[^\w]`)

// Identifier makes s safe as a file, table or schema name: every non-word
// character becomes an underscore and leading or trailing underscores are
// removed.
func Identifier(s string) string {
	return strings.Trim(nonWord.ReplaceAllString(s, "_"), "_")
}

// DocumentName returns the base name of a document without its extension.
func DocumentName(document string) string {
	base := filepath.Base(document)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EncodeCSV renders a frame with a header row.
func EncodeCSV(frame *columns.Frame) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(frame.Header()); err != nil {
		return nil, err
	}
	if err := w.WriteAll(frame.Rows()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// names hands out unique names per document.
type names struct {
	mu   sync.Mutex
	seen map[string]map[string]int
}

func (n *names) unique(document, name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seen == nil {
		n.seen = make(map[string]map[string]int)
	}
	used := n.seen[document]
	if used == nil {
		used = make(map[string]int)
		n.seen[document] = used
	}
	used[name]++
	if c := used[name]; c > 1 {
		return fmt.Sprintf("%s_%d", name, c)
	}
	return name
}

// Multi writes every frame to all sinks.
type Multi []Sink

// Write writes to every sink and joins their errors.
func (m Multi) Write(ctx context.Context, document string, frame *columns.Frame) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, document, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
