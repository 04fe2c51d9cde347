package materialize

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/types"
)

// AggregateFunction accumulates a value over the records of one group.
type AggregateFunction interface {
	// ProcessFirst initializes the aggregate from the group's first
	// record.
	ProcessFirst(s interfaces.Scan) error
	// ProcessNext folds a subsequent record of the group into the
	// aggregate.
	ProcessNext(s interfaces.Scan) error
	// FieldName is the name the aggregate's result is exposed under.
	FieldName() string
	// value returns the aggregate's current value.
	value() types.Constant
}
