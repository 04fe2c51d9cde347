package interfaces

import (
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// UpdateScan extends Scan with the write-side operations: anything that
// can be read can also, if it implements UpdateScan, be written,
// inserted into, or deleted from. A single interface for both read-only
// and updatable scans means a plan that only ever reads (e.g. a
// materialized temp table used as a sort run) can still satisfy Scan
// without callers needing a second, narrower scan type.
type UpdateScan interface {
	Scan

	// SetVal modifies fieldName in the current record via a
	// type-independent Constant.
	SetVal(fieldName string, val types.Constant) error

	// SetInt modifies an integer field in the current record.
	SetInt(fieldName string, val int) error

	// SetString modifies a string field in the current record.
	SetString(fieldName string, val string) error

	// Insert creates a new record; its location is scan-dependent.
	Insert() error

	// Delete removes the current record.
	Delete() error

	// GetRID returns the identifier of the current record.
	GetRID() (record.RID, error)

	// MoveToRID positions the scan at the record identified by rid.
	MoveToRID(rid record.RID) error
}
