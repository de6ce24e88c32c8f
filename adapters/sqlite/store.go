package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"sheetrep/domain/report"
)

// Store persists report records in a single-table sqlite file.
//
// Opening is destructive: the table is dropped and recreated, so every run
// starts from an empty table. That makes re-running the only (and safe)
// recovery path after a partial load.
type Store struct {
	db    *sqlx.DB
	table string
}

// Open connects to the sqlite file at path, creating it if needed, and
// resets the report table. The caller owns the returned store for the rest
// of the run and must Close it.
func Open(path, table string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report database: %w", err)
	}

	s := &Store{db: db, table: table}
	if err := s.reset(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) reset() error {
	if _, err := s.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", s.table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", s.table, err)
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		value INTEGER NOT NULL,
		company_id INTEGER NOT NULL
	)`, s.table)
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// Append inserts one record. Each insert commits on its own; there is no
// batching, so a crash mid-load leaves a consistent partial table. Dates
// are stored as ISO-8601 text.
func (s *Store) Append(ctx context.Context, rec report.Record) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (type, name, date, value, company_id) VALUES (?, ?, ?, ?, ?)",
		s.table,
	)

	_, err := s.db.ExecContext(ctx, query,
		rec.Type, rec.Name, rec.DateString(), rec.Value, rec.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// Select projects the requested fields (raw column names or aggregate
// expressions), optionally grouped. Result rows are keyed by the column
// names the query engine reports, so aliased expressions come back under
// their alias. Each call re-executes the query against current table state.
func (s *Store) Select(ctx context.Context, fields []string, groupBy string) ([]report.Row, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ", "), s.table)
	if groupBy != "" {
		query += " GROUP BY " + groupBy
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	var result []report.Row
	for rows.Next() {
		row := report.Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return result, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
