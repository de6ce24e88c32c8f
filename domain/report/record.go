package report

import (
	"time"
)

// DateLayout is the storage form of record dates (ISO-8601 date).
const DateLayout = "2006-01-02"

// Record is one normalized observation: the value of a single data cell
// together with the header context (indicator type, indicator name, value
// date) attributed to its column, and the company identifier of its row.
type Record struct {
	Type      string    `db:"type"`
	Name      string    `db:"name"`
	Date      time.Time `db:"date"`
	Value     int       `db:"value"`
	CompanyID int       `db:"company_id"`
}

// DateString returns the record date in storage form.
func (r Record) DateString() string {
	return r.Date.Format(DateLayout)
}

// Row is one result row of a projection query, keyed by the result-column
// name the query engine reports (the alias for aliased expressions).
type Row map[string]interface{}
