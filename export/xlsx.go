package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/stitch/columns"
)

const maxSheetName = 31

// XLSX collects the frames of each document into one workbook with a
// sheet per frame. Workbooks are saved on Close as <dir>/<document>.xlsx.
type XLSX struct {
	dir string

	mu    sync.Mutex
	books map[string]*excelize.File
	names names
}

// NewXLSX creates a workbook sink rooted at dir.
func NewXLSX(dir string) *XLSX {
	return &XLSX{dir: dir, books: make(map[string]*excelize.File)}
}

// Write adds the frame as a new sheet. Numbers, dates and nulls keep their
// type in the sheet.
func (x *XLSX) Write(_ context.Context, document string, frame *columns.Frame) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	sheet := x.names.unique(document, sheetName(frame.Name))

	f, ok := x.books[document]
	if !ok {
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("name sheet %s: %w", sheet, err)
		}
		x.books[document] = f
	} else if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("add sheet %s: %w", sheet, err)
	}

	header := make([]any, len(frame.Columns))
	for j, c := range frame.Columns {
		header[j] = c.Name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < frame.Len(); i++ {
		row := make([]any, len(frame.Columns))
		for j, c := range frame.Columns {
			row[j] = c.Values[i].Native(c.Kind, c.Integer)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}

// Close saves every workbook.
func (x *XLSX) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if len(x.books) == 0 {
		return nil
	}
	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var errs []error
	for document, f := range x.books {
		path := filepath.Join(x.dir, DocumentName(document)+".xlsx")
		if err := f.SaveAs(path); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", path, err))
		}
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(x.books, document)
	}
	return errors.Join(errs...)
}

// sheetName fits a frame name into a sheet name, leaving room for a
// uniqueness suffix.
func sheetName(name string) string {
	name = fileName(name)
	if len(name) > maxSheetName-3 {
		name = name[:maxSheetName-3]
	}
	return name
}
