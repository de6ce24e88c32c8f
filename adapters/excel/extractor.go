package excel

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetrep/domain/report"
	apperrors "sheetrep/internal/errors"
)

// Layout fixes where the header rows and the data region sit in a sheet.
// Rows are 1-based; columns are letter coordinates.
type Layout struct {
	StartRow   int
	StartCol   string
	TypeRow    int
	NameRow    int
	DateRow    int
	CompanyCol string
}

// DefaultLayout returns the standard indicator sheet layout: indicator type
// in row 1, indicator name in row 2, day offset in row 3, data from C4,
// company identifiers in column B.
func DefaultLayout() Layout {
	return Layout{
		StartRow:   4,
		StartCol:   "C",
		TypeRow:    1,
		NameRow:    2,
		DateRow:    3,
		CompanyCol: "B",
	}
}

// Extractor walks the data region of one sheet and yields normalized
// records, carrying header values forward across merged spans.
type Extractor struct {
	f      *excelize.File
	sheet  string
	layout Layout
	merges []mergeRange

	// maxColumn is the right boundary of the header/data region: the last
	// contiguous column of row 1, where blank merged cells extend a span
	// and a blank unmerged cell ends the scan. 0 when row 1 is empty.
	maxColumn int

	now func() time.Time
}

type mergeRange struct {
	startCol, startRow int
	endCol, endRow     int
}

func (m mergeRange) contains(col, row int) bool {
	return col >= m.startCol && col <= m.endCol && row >= m.startRow && row <= m.endRow
}

// NewExtractor opens the workbook at path and resolves the sheet to read:
// the named sheet, or the workbook's active sheet when name is empty. A
// named sheet that does not exist is a fatal lookup error.
func NewExtractor(path, sheetName string, layout Layout) (*Extractor, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet := sheetName
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	} else {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			f.Close()
			return nil, apperrors.SheetNotFound(sheet)
		}
	}

	e := &Extractor{
		f:      f,
		sheet:  sheet,
		layout: layout,
		now:    time.Now,
	}

	if err := e.loadMergeRanges(); err != nil {
		f.Close()
		return nil, err
	}
	e.maxColumn = e.scanHeaderBoundary()

	log.Printf("[Extractor] opened %s sheet %q (%d header columns)", path, sheet, e.maxColumn)
	return e, nil
}

func (e *Extractor) loadMergeRanges() error {
	cells, err := e.f.GetMergeCells(e.sheet)
	if err != nil {
		return fmt.Errorf("failed to read merged ranges: %w", err)
	}
	for _, mc := range cells {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return fmt.Errorf("failed to parse merged range start %q: %w", mc.GetStartAxis(), err)
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return fmt.Errorf("failed to parse merged range end %q: %w", mc.GetEndAxis(), err)
		}
		e.merges = append(e.merges, mergeRange{
			startCol: startCol, startRow: startRow,
			endCol: endCol, endRow: endRow,
		})
	}
	return nil
}

// scanHeaderBoundary walks row 1 left to right and returns the last column
// before a blank, unmerged cell.
func (e *Extractor) scanHeaderBoundary() int {
	maxColumn := 0
	for col := 1; ; col++ {
		if e.cellValue(1, col) == "" && !e.isMerged(col, 1) {
			break
		}
		maxColumn = col
	}
	return maxColumn
}

// isMerged reports whether (col, row) lies inside any declared merged
// range. The linear scan is deliberate: merged-range counts are tiny and
// this is a correctness path, not a hot one.
func (e *Extractor) isMerged(col, row int) bool {
	for _, m := range e.merges {
		if m.contains(col, row) {
			return true
		}
	}
	return false
}

// cellValue returns the raw cell value at (row, col), "" for blank or
// out-of-range cells.
func (e *Extractor) cellValue(row, col int) string {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	v, err := e.f.GetCellValue(e.sheet, axis)
	if err != nil {
		return ""
	}
	return v
}

// headerValue resolves the header cell at (row, col) against the carried
// value for that header role: a blank cell inside a merged span inherits
// the carried value, anything else (including a blank unmerged cell)
// replaces it, lowercased.
func (e *Extractor) headerValue(row, col int, carried string) string {
	v := e.cellValue(row, col)
	if v == "" && e.isMerged(col, row) {
		return carried
	}
	return strings.ToLower(v)
}

// Iterate walks the data region row by row, left to right, and calls fn
// for every cell's record. The type, name and date headers are sticky for
// the whole walk: once read from an explicit cell they persist until the
// next explicit value, across row boundaries included.
func (e *Extractor) Iterate(fn func(rec report.Record) error) error {
	startCol, err := excelize.ColumnNameToNumber(e.layout.StartCol)
	if err != nil {
		return apperrors.ConfigInvalid(fmt.Sprintf("invalid start column %q", e.layout.StartCol))
	}
	companyCol, err := excelize.ColumnNameToNumber(e.layout.CompanyCol)
	if err != nil {
		return apperrors.ConfigInvalid(fmt.Sprintf("invalid company column %q", e.layout.CompanyCol))
	}

	rows, err := e.f.GetRows(e.sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", e.sheet, err)
	}
	lastRow := len(rows)

	var indType, indName, indDate string
	today := truncateToDay(e.now())

	for row := e.layout.StartRow; row <= lastRow; row++ {
		for col := startCol; col <= e.maxColumn; col++ {
			indType = e.headerValue(e.layout.TypeRow, col, indType)
			indName = e.headerValue(e.layout.NameRow, col, indName)
			indDate = e.headerValue(e.layout.DateRow, col, indDate)

			rec := report.Record{
				Type:      indType,
				Name:      indName,
				Date:      today.AddDate(0, 0, report.ParseInt(indDate)),
				Value:     report.ParseInt(e.cellValue(row, col)),
				CompanyID: report.ParseInt(e.cellValue(row, companyCol)),
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases the workbook handle.
func (e *Extractor) Close() error {
	return e.f.Close()
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
