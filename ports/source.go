package ports

import (
	"sheetrep/domain/report"
)

// RecordSource streams normalized records out of a tabular input in one
// forward pass. The pass is finite and not restartable; a non-nil error
// from fn aborts the walk and is returned unchanged.
type RecordSource interface {
	Iterate(fn func(rec report.Record) error) error
	Close() error
}
