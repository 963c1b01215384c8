package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const portfolioSheet = "Portfolio"

// XLSXWriter implements SheetWriter by writing a local .xlsx workbook.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates an XLSXWriter targeting the given file path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write creates a workbook with a single Portfolio sheet and saves it,
// overwriting any existing file at the path.
func (w *XLSXWriter) Write(ctx context.Context, values [][]any) error {
	f, err := BuildWorkbook(values)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}

// BuildWorkbook builds an in-memory workbook from sheet values. Shared by
// the file writer and the API download endpoint.
func BuildWorkbook(values [][]any) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), portfolioSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for i, row := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("computing cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(portfolioSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	return f, nil
}
