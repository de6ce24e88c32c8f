package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"sheetrep/domain/report"
	"sheetrep/ports"
)

// ReportColumns is the column order of the printed aggregate report.
var ReportColumns = []string{"date", "indicator", "type", "total"}

// AggregateFields are the projections behind the report: one row per
// (date, name, type) group with the summed value.
var AggregateFields = []string{"date", "name AS indicator", "type", "SUM(value) AS total"}

// AggregateGroupBy is the grouping key of the report.
const AggregateGroupBy = "date, name, type"

// LoadResult summarizes one completed load run.
type LoadResult struct {
	RunID   string
	Records int
}

// Loader drives the extract -> append -> aggregate pipeline. It owns
// neither the source nor the repository; the caller opens and closes both.
type Loader struct {
	source ports.RecordSource
	repo   ports.ReportRepository
}

// NewLoader creates a loader over an open source and repository.
func NewLoader(source ports.RecordSource, repo ports.ReportRepository) *Loader {
	return &Loader{source: source, repo: repo}
}

// Load streams every record out of the source into the repository in a
// single pass. Records are not retained; each one is persisted before the
// next is read.
func (l *Loader) Load(ctx context.Context) (*LoadResult, error) {
	result := &LoadResult{RunID: uuid.NewString()}

	err := l.source.Iterate(func(rec report.Record) error {
		if err := l.repo.Append(ctx, rec); err != nil {
			return err
		}
		result.Records++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load run %s failed after %d records: %w", result.RunID, result.Records, err)
	}

	log.Printf("[Loader] run %s loaded %d records", result.RunID, result.Records)
	return result, nil
}

// Aggregate runs the grouped SUM query over the loaded records.
func (l *Loader) Aggregate(ctx context.Context) ([]report.Row, error) {
	return l.repo.Select(ctx, AggregateFields, AggregateGroupBy)
}
