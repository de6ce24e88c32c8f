package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/montanaflynn/stats"

	"sheetrep/domain/report"
)

// WriteSummary appends distribution statistics over the group totals of an
// aggregate report: count, mean, median, min and max.
func WriteSummary(w io.Writer, rows []report.Row) error {
	totals := make([]float64, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, totalValue(row["total"]))
	}

	if len(totals) == 0 {
		fmt.Fprintln(w, "no groups to summarize")
		return nil
	}

	mean, err := stats.Mean(totals)
	if err != nil {
		return fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(totals)
	if err != nil {
		return fmt.Errorf("failed to compute median: %w", err)
	}
	min, err := stats.Min(totals)
	if err != nil {
		return fmt.Errorf("failed to compute min: %w", err)
	}
	max, err := stats.Max(totals)
	if err != nil {
		return fmt.Errorf("failed to compute max: %w", err)
	}

	fmt.Fprintf(w, "groups: %d\tmean: %.2f\tmedian: %.2f\tmin: %.0f\tmax: %.0f\n",
		len(totals), mean, median, min, max)
	return nil
}

func totalValue(v interface{}) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	case []byte:
		f, _ := strconv.ParseFloat(string(n), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
