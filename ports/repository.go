package ports

import (
	"context"

	"sheetrep/domain/report"
)

// ReportRepository defines the interface for report row storage
type ReportRepository interface {
	// Append inserts one record. Every call is individually durable; there
	// is no batching and no uniqueness constraint.
	Append(ctx context.Context, rec report.Record) error

	// Select projects the requested fields (raw column names or aggregate
	// expressions such as "SUM(value) AS total"), optionally grouped. Each
	// call re-executes the query against the current table state.
	Select(ctx context.Context, fields []string, groupBy string) ([]report.Row, error)

	// Close releases the backing resource.
	Close() error
}
