package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/stitch/columns"
)

// CSV writes one file per frame into a directory per document:
// <dir>/<document>/<frame>.csv.
type CSV struct {
	dir   string
	names names
}

// NewCSV creates a CSV sink rooted at dir.
func NewCSV(dir string) *CSV {
	return &CSV{dir: dir}
}

// Write writes the frame. Repeated frame names within a document get a
// numeric suffix.
func (c *CSV) Write(_ context.Context, document string, frame *columns.Frame) error {
	docDir := filepath.Join(c.dir, DocumentName(document))
	if err := os.MkdirAll(docDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := EncodeCSV(frame)
	if err != nil {
		return fmt.Errorf("encode %s: %w", frame.Name, err)
	}

	name := c.names.unique(document, fileName(frame.Name))
	path := filepath.Join(docDir, name+".csv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Close is a no-op; files are written eagerly.
func (c *CSV) Close() error { return nil }

func fileName(name string) string {
	if n := Identifier(name); n != "" {
		return n
	}
	return "table"
}
