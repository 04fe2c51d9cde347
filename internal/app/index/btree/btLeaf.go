package btree

import (
	"quilldb/internal/app/file"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// BTreeLeaf is a cursor over the leaf entries matching one search key,
// transparently following the overflow chain of equal-key blocks (spec
// §5, leaf overflow for duplicate keys).
type BTreeLeaf struct {
	tx          *tx.Transaction
	layout      *record.Layout
	searchKey   types.Constant
	contents    *BTPage
	currentSlot int
	fileName    string
}

// NewBTreeLeaf opens block and positions just before the first entry
// that could equal searchKey.
func NewBTreeLeaf(t *tx.Transaction, block file.BlockID, layout *record.Layout, searchKey types.Constant) (*BTreeLeaf, error) {
	contents, err := NewBTPage(t, block, layout)
	if err != nil {
		return nil, err
	}
	slot, err := contents.FindSlotBefore(searchKey)
	if err != nil {
		return nil, err
	}
	return &BTreeLeaf{
		tx:          t,
		layout:      layout,
		searchKey:   searchKey,
		fileName:    block.FileName(),
		contents:    contents,
		currentSlot: slot,
	}, nil
}

func (l *BTreeLeaf) Close() {
	l.contents.Close()
}

// Next advances to the next entry whose data value equals the search
// key, following the overflow chain if the current page runs out.
func (l *BTreeLeaf) Next() (bool, error) {
	l.currentSlot++
	numRecs, err := l.contents.GetNumRecs()
	if err != nil {
		return false, err
	}
	if l.currentSlot >= numRecs {
		return l.tryOverflow()
	}
	val, err := l.contents.GetDataVal(l.currentSlot)
	if err != nil {
		return false, err
	}
	if val.Equals(l.searchKey) {
		return true, nil
	}
	return l.tryOverflow()
}

func (l *BTreeLeaf) GetDataRid() (record.RID, error) {
	return l.contents.GetDataRid(l.currentSlot)
}

// Delete scans forward for the entry pointing at datarid and removes it.
func (l *BTreeLeaf) Delete(datarid record.RID) error {
	for {
		ok, err := l.Next()
		if err != nil || !ok {
			return err
		}
		rid, err := l.GetDataRid()
		if err != nil {
			return err
		}
		if rid == datarid {
			return l.contents.Delete(l.currentSlot)
		}
	}
}

// Insert adds a leaf entry for datarid under this leaf's search key,
// splitting the page (or growing an overflow chain, for an all-equal
// page) if it becomes full. Returns a DirEntry to propagate to the
// parent directory page if a split occurred, else nil.
func (l *BTreeLeaf) Insert(datarid record.RID) (*DirEntry, error) {
	flag, err := l.contents.GetFlag()
	if err != nil {
		return nil, err
	}

	if flag >= 0 {
		firstVal, err := l.contents.GetDataVal(0)
		if err != nil {
			return nil, err
		}
		if firstVal.CompareTo(l.searchKey) > 0 {
			newBlock, err := l.contents.Split(0, flag)
			if err != nil {
				return nil, err
			}
			l.currentSlot = 0
			if err := l.contents.SetFlag(-1); err != nil {
				return nil, err
			}
			if err := l.contents.InsertLeaf(l.currentSlot, l.searchKey, datarid); err != nil {
				return nil, err
			}
			return NewDirEntry(firstVal, newBlock.Number()), nil
		}
	}

	l.currentSlot++
	if err := l.contents.InsertLeaf(l.currentSlot, l.searchKey, datarid); err != nil {
		return nil, err
	}

	full, err := l.contents.IsFull()
	if err != nil {
		return nil, err
	}
	if !full {
		return nil, nil
	}

	numRecs, err := l.contents.GetNumRecs()
	if err != nil {
		return nil, err
	}
	firstKey, err := l.contents.GetDataVal(0)
	if err != nil {
		return nil, err
	}
	lastKey, err := l.contents.GetDataVal(numRecs - 1)
	if err != nil {
		return nil, err
	}

	if lastKey.Equals(firstKey) {
		flag, err := l.contents.GetFlag()
		if err != nil {
			return nil, err
		}
		newBlock, err := l.contents.Split(1, flag)
		if err != nil {
			return nil, err
		}
		if err := l.contents.SetFlag(newBlock.Number()); err != nil {
			return nil, err
		}
		return nil, nil
	}

	splitPos := numRecs / 2
	splitKey, err := l.contents.GetDataVal(splitPos)
	if err != nil {
		return nil, err
	}

	if splitKey.Equals(firstKey) {
		for {
			numRecs, err := l.contents.GetNumRecs()
			if err != nil {
				return nil, err
			}
			if splitPos >= numRecs {
				break
			}
			v, err := l.contents.GetDataVal(splitPos)
			if err != nil {
				return nil, err
			}
			if !v.Equals(splitKey) {
				break
			}
			splitPos++
		}
		splitKey, err = l.contents.GetDataVal(splitPos)
		if err != nil {
			return nil, err
		}
	} else {
		for splitPos > 0 {
			v, err := l.contents.GetDataVal(splitPos - 1)
			if err != nil {
				return nil, err
			}
			if !v.Equals(splitKey) {
				break
			}
			splitPos--
		}
	}

	newBlock, err := l.contents.Split(splitPos, -1)
	if err != nil {
		return nil, err
	}
	return NewDirEntry(splitKey, newBlock.Number()), nil
}

// tryOverflow follows the current page's flag into its overflow block,
// if the search key matches the page's first entry and an overflow
// chain exists.
func (l *BTreeLeaf) tryOverflow() (bool, error) {
	firstKey, err := l.contents.GetDataVal(0)
	if err != nil {
		return false, err
	}
	flag, err := l.contents.GetFlag()
	if err != nil {
		return false, err
	}
	if !l.searchKey.Equals(firstKey) || flag < 0 {
		return false, nil
	}

	l.contents.Close()
	nextBlock := file.NewBlockID(l.fileName, flag)
	contents, err := NewBTPage(l.tx, nextBlock, l.layout)
	if err != nil {
		return false, err
	}
	l.contents = contents
	l.currentSlot = 0
	return true, nil
}
