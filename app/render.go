package app

import (
	"fmt"
	"io"
	"strings"

	"sheetrep/domain/report"
)

const columnWidth = 10

// WriteReport prints the aggregate rows as tab-separated text, each column
// padded to a 10-character minimum, header line first.
func WriteReport(w io.Writer, rows []report.Row) {
	cells := make([]string, len(ReportColumns))
	for i, col := range ReportColumns {
		cells[i] = pad(col)
	}
	fmt.Fprintln(w, strings.Join(cells, "\t"))

	for _, row := range rows {
		for i, col := range ReportColumns {
			cells[i] = pad(cellText(row[col]))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
}

func pad(s string) string {
	return fmt.Sprintf("%-*s", columnWidth, s)
}

// cellText normalizes driver-dependent scan types to display text.
func cellText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
