package interfaces

import "quilldb/internal/app/types"

// Scan is implemented by every relational-algebra operator (table scan,
// select, project, product, join, ...), giving uniform iteration over
// records regardless of where they come from.
type Scan interface {
	// BeforeFirst positions the scan before its first record.
	BeforeFirst() error

	// Next advances to the next record, returning false once exhausted.
	Next() (bool, error)

	// GetInt returns the value of an integer field in the current record.
	GetInt(fieldName string) (int, error)

	// GetString returns the value of a string field in the current record.
	GetString(fieldName string) (string, error)

	// GetVal returns the value of any field as a type-independent Constant.
	GetVal(fieldName string) (types.Constant, error)

	// HasField reports whether this scan produces fieldName.
	HasField(fieldName string) bool

	// Close releases every resource (subscans, buffers) this scan holds.
	Close() error
}
