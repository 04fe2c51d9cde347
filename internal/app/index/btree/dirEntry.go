package btree

import "quilldb/internal/app/types"

// DirEntry is a (key, child block) pair produced when a split propagates
// up to a directory page's parent.
type DirEntry struct {
	dataval  types.Constant
	blocknum int
}

func NewDirEntry(dataval types.Constant, blocknum int) *DirEntry {
	return &DirEntry{dataval: dataval, blocknum: blocknum}
}

func (d *DirEntry) DataVal() types.Constant { return d.dataval }
func (d *DirEntry) BlockNumber() int        { return d.blocknum }
