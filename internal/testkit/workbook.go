package testkit

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookBuilder assembles small xlsx fixtures for extractor and pipeline
// tests. Setters are chainable; the first failure is remembered and
// surfaced by Save.
type WorkbookBuilder struct {
	f     *excelize.File
	sheet string
	err   error
}

// NewWorkbook creates a builder for a workbook with a single named sheet.
func NewWorkbook(sheet string) *WorkbookBuilder {
	f := excelize.NewFile()
	b := &WorkbookBuilder{f: f, sheet: sheet}
	if sheet != "Sheet1" {
		b.err = f.SetSheetName("Sheet1", sheet)
	}
	return b
}

// Cell sets a single cell value, e.g. Cell("C1", "revenue").
func (b *WorkbookBuilder) Cell(axis string, value interface{}) *WorkbookBuilder {
	if b.err == nil {
		b.err = b.f.SetCellValue(b.sheet, axis, value)
	}
	return b
}

// Merge declares a merged range, e.g. Merge("C1", "D1"). Only the anchor
// cell keeps an explicit value.
func (b *WorkbookBuilder) Merge(start, end string) *WorkbookBuilder {
	if b.err == nil {
		b.err = b.f.MergeCell(b.sheet, start, end)
	}
	return b
}

// Save writes the workbook to path and closes it.
func (b *WorkbookBuilder) Save(path string) error {
	defer b.f.Close()
	if b.err != nil {
		return fmt.Errorf("failed to build workbook: %w", b.err)
	}
	if err := b.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// IndicatorWorkbook builds the canonical single-indicator fixture: three
// header rows merged across C:D ("revenue" / "sales" / a 10-day offset),
// one data row with values 100 and 200, and company 7 in column B.
func IndicatorWorkbook() *WorkbookBuilder {
	return NewWorkbook("Sheet1").
		Cell("A1", "indicators").
		Cell("B1", "company").
		Cell("C1", "revenue").Merge("C1", "D1").
		Cell("C2", "sales").Merge("C2", "D2").
		Cell("C3", "10").Merge("C3", "D3").
		Cell("B4", "7").
		Cell("C4", "100").
		Cell("D4", "200")
}
