package index

import (
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// Index is implemented by every secondary index structure (B-tree,
// static hash): a cursor over the (key, RID) pairs matching a search
// key, plus insert/delete of individual entries.
type Index interface {
	// BeforeFirst positions the index before the first entry matching
	// searchKey.
	BeforeFirst(searchKey types.Constant) error

	// Next advances to the next matching entry.
	Next() (bool, error)

	// GetDataRid returns the RID of the current entry.
	GetDataRid() (record.RID, error)

	// Insert adds an entry mapping dataVal to dataRid.
	Insert(dataVal types.Constant, dataRid record.RID) error

	// Delete removes the entry mapping dataVal to dataRid.
	Delete(dataVal types.Constant, dataRid record.RID) error

	// Close releases any resources (pinned blocks) this index holds.
	Close() error
}
