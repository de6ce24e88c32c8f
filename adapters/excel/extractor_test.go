package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sheetrep/domain/report"
	apperrors "sheetrep/internal/errors"
	"sheetrep/internal/testkit"
)

func saveWorkbook(t *testing.T, b *testkit.WorkbookBuilder) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, b.Save(path))
	return path
}

func collect(t *testing.T, e *Extractor) []report.Record {
	t.Helper()
	var records []report.Record
	require.NoError(t, e.Iterate(func(rec report.Record) error {
		records = append(records, rec)
		return nil
	}))
	return records
}

func fixedToday() time.Time {
	return time.Date(2026, 8, 29, 13, 30, 0, 0, time.UTC)
}

func TestIterateIndicatorSheet(t *testing.T) {
	path := saveWorkbook(t, testkit.IndicatorWorkbook())

	e, err := NewExtractor(path, "", DefaultLayout())
	require.NoError(t, err)
	defer e.Close()
	e.now = fixedToday

	records := collect(t, e)
	require.Len(t, records, 2)

	wantDate := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	require.Equal(t, report.Record{
		Type: "revenue", Name: "sales", Date: wantDate, Value: 100, CompanyID: 7,
	}, records[0])
	require.Equal(t, report.Record{
		Type: "revenue", Name: "sales", Date: wantDate, Value: 200, CompanyID: 7,
	}, records[1])
}

func TestMergedSpanCarriesAnchorValue(t *testing.T) {
	// Type header anchored at C1 spans C:F; every column in the span must
	// resolve to the anchor value.
	b := testkit.NewWorkbook("Sheet1").
		Cell("A1", "x").Cell("B1", "x").
		Cell("C1", "Liquidity").Merge("C1", "F1").
		Cell("C2", "ratio").Merge("C2", "F2").
		Cell("C3", "0").Merge("C3", "F3").
		Cell("B4", "1").
		Cell("C4", "1").Cell("D4", "2").Cell("E4", "3").Cell("F4", "4")
	path := saveWorkbook(t, b)

	e, err := NewExtractor(path, "", DefaultLayout())
	require.NoError(t, err)
	defer e.Close()
	e.now = fixedToday

	records := collect(t, e)
	require.Len(t, records, 4)
	for _, rec := range records {
		require.Equal(t, "liquidity", rec.Type)
		require.Equal(t, "ratio", rec.Name)
	}
}

func TestBlankUnmergedHeaderOverwrites(t *testing.T) {
	// D2 is blank and not merged, so the carried name is replaced by "",
	// not inherited. Carry-forward is a column-scan policy, not per-span.
	b := testkit.NewWorkbook("Sheet1").
		Cell("A1", "x").Cell("B1", "x").
		Cell("C1", "t").Merge("C1", "D1").
		Cell("C2", "alpha").
		Cell("C3", "0").Merge("C3", "D3").
		Cell("B4", "1").
		Cell("C4", "10").Cell("D4", "20")
	path := saveWorkbook(t, b)

	e, err := NewExtractor(path, "", DefaultLayout())
	require.NoError(t, err)
	defer e.Close()
	e.now = fixedToday

	records := collect(t, e)
	require.Len(t, records, 2)
	require.Equal(t, "alpha", records[0].Name)
	require.Equal(t, "", records[1].Name)
}

func TestHeaderBoundaryStopsAtBlankUnmergedCell(t *testing.T) {
	// D1 is blank and unmerged, so the region ends at column C even though
	// D4 holds data.
	b := testkit.NewWorkbook("Sheet1").
		Cell("A1", "x").Cell("B1", "x").
		Cell("C1", "t").
		Cell("C2", "n").
		Cell("C3", "0").
		Cell("B4", "1").
		Cell("C4", "100").Cell("D4", "999")
	path := saveWorkbook(t, b)

	e, err := NewExtractor(path, "", DefaultLayout())
	require.NoError(t, err)
	defer e.Close()
	e.now = fixedToday

	require.Equal(t, 3, e.maxColumn)

	records := collect(t, e)
	require.Len(t, records, 1)
	require.Equal(t, 100, records[0].Value)
}

func TestHeadersAreLowercased(t *testing.T) {
	b := testkit.NewWorkbook("Sheet1").
		Cell("A1", "x").Cell("B1", "x").
		Cell("C1", "REVENUE").
		Cell("C2", "Sales").
		Cell("C3", "0").
		Cell("B4", "1").
		Cell("C4", "5")
	path := saveWorkbook(t, b)

	e, err := NewExtractor(path, "", DefaultLayout())
	require.NoError(t, err)
	defer e.Close()
	e.now = fixedToday

	records := collect(t, e)
	require.Len(t, records, 1)
	require.Equal(t, "revenue", records[0].Type)
	require.Equal(t, "sales", records[0].Name)
}

func TestMalformedCellsCoerceToZero(t *testing.T) {
	b := testkit.NewWorkbook("Sheet1").
		Cell("A1", "x").Cell("B1", "x").
		Cell("C1", "t").
		Cell("C2", "n").
		Cell("C3", "not a number").
		Cell("B4", "n/a").
		Cell("C4", "garbled")
	path := saveWorkbook(t, b)

	e, err := NewExtractor(path, "", DefaultLayout())
	require.NoError(t, err)
	defer e.Close()
	e.now = fixedToday

	records := collect(t, e)
	require.Len(t, records, 1)
	require.Equal(t, 0, records[0].Value)
	require.Equal(t, 0, records[0].CompanyID)
	require.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), records[0].Date)
}

func TestNamedSheetSelection(t *testing.T) {
	b := testkit.NewWorkbook("January").
		Cell("A1", "x").Cell("B1", "x").
		Cell("C1", "t").Cell("C2", "n").Cell("C3", "0").
		Cell("B4", "1").Cell("C4", "42")
	path := saveWorkbook(t, b)

	e, err := NewExtractor(path, "January", DefaultLayout())
	require.NoError(t, err)
	defer e.Close()
	e.now = fixedToday

	records := collect(t, e)
	require.Len(t, records, 1)
	require.Equal(t, 42, records[0].Value)
}

func TestUnknownSheetIsLookupError(t *testing.T) {
	path := saveWorkbook(t, testkit.IndicatorWorkbook())

	_, err := NewExtractor(path, "NoSuchSheet", DefaultLayout())
	require.Error(t, err)
	require.Equal(t, apperrors.CodeSheetNotFound, apperrors.GetCode(err))
}

func TestEmptyHeaderRowYieldsNoRecords(t *testing.T) {
	// Row 1 starts blank and unmerged: the region has no columns and the
	// walk emits nothing.
	b := testkit.NewWorkbook("Sheet1").
		Cell("C4", "100")
	path := saveWorkbook(t, b)

	e, err := NewExtractor(path, "", DefaultLayout())
	require.NoError(t, err)
	defer e.Close()

	require.Equal(t, 0, e.maxColumn)
	require.Empty(t, collect(t, e))
}
