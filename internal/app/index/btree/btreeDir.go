package btree

import (
	"quilldb/internal/app/file"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// BTreeDir wraps one directory (non-leaf) block. Directory entries are
// (key, child block) pairs; a page's flag records its level, 0 meaning
// its children are leaves.
type BTreeDir struct {
	tx       *tx.Transaction
	layout   *record.Layout
	contents *BTPage
	fileName string
}

func NewBTreeDir(t *tx.Transaction, block file.BlockID, layout *record.Layout) (*BTreeDir, error) {
	contents, err := NewBTPage(t, block, layout)
	if err != nil {
		return nil, err
	}
	return &BTreeDir{tx: t, layout: layout, contents: contents, fileName: block.FileName()}, nil
}

func (d *BTreeDir) Close() {
	d.contents.Close()
}

// Search walks down from this directory node to the leaf block that
// should contain searchKey, rebinding d.contents as it descends (so the
// directory's own state always reflects where the search currently is).
func (d *BTreeDir) Search(searchKey types.Constant) (int, error) {
	childBlock, err := d.findChildBlock(searchKey)
	if err != nil {
		return 0, err
	}

	for {
		flag, err := d.contents.GetFlag()
		if err != nil {
			return 0, err
		}
		if flag <= 0 {
			break
		}
		d.contents.Close()
		contents, err := NewBTPage(d.tx, childBlock, d.layout)
		if err != nil {
			return 0, err
		}
		d.contents = contents
		childBlock, err = d.findChildBlock(searchKey)
		if err != nil {
			return 0, err
		}
	}
	return childBlock.Number(), nil
}

// MakeNewRoot splits the root (always block 0) into a new block holding
// its old contents, then inserts entries for both that block and e,
// growing the tree by one level.
func (d *BTreeDir) MakeNewRoot(e *DirEntry) error {
	firstVal, err := d.contents.GetDataVal(0)
	if err != nil {
		return err
	}
	level, err := d.contents.GetFlag()
	if err != nil {
		return err
	}
	newBlock, err := d.contents.Split(0, level)
	if err != nil {
		return err
	}

	oldroot := NewDirEntry(firstVal, newBlock.Number())
	if _, err := d.insertEntry(oldroot); err != nil {
		return err
	}
	if _, err := d.insertEntry(e); err != nil {
		return err
	}
	return d.contents.SetFlag(level + 1)
}

// Insert recursively descends to the level-0 directory above the leaves
// and inserts e there, propagating a new DirEntry upward if any node
// along the path splits.
func (d *BTreeDir) Insert(e *DirEntry) (*DirEntry, error) {
	flag, err := d.contents.GetFlag()
	if err != nil {
		return nil, err
	}
	if flag == 0 {
		return d.insertEntry(e)
	}

	childBlock, err := d.findChildBlock(e.DataVal())
	if err != nil {
		return nil, err
	}
	child, err := NewBTreeDir(d.tx, childBlock, d.layout)
	if err != nil {
		return nil, err
	}
	myentry, err := child.Insert(e)
	child.Close()
	if err != nil {
		return nil, err
	}
	if myentry != nil {
		return d.insertEntry(myentry)
	}
	return nil, nil
}

func (d *BTreeDir) insertEntry(e *DirEntry) (*DirEntry, error) {
	slot, err := d.contents.FindSlotBefore(e.DataVal())
	if err != nil {
		return nil, err
	}
	newSlot := 1 + slot
	if err := d.contents.InsertDir(newSlot, e.DataVal(), e.BlockNumber()); err != nil {
		return nil, err
	}

	full, err := d.contents.IsFull()
	if err != nil {
		return nil, err
	}
	if !full {
		return nil, nil
	}

	level, err := d.contents.GetFlag()
	if err != nil {
		return nil, err
	}
	numRecs, err := d.contents.GetNumRecs()
	if err != nil {
		return nil, err
	}
	splitPos := numRecs / 2
	splitVal, err := d.contents.GetDataVal(splitPos)
	if err != nil {
		return nil, err
	}
	newBlock, err := d.contents.Split(splitPos, level)
	if err != nil {
		return nil, err
	}
	return NewDirEntry(splitVal, newBlock.Number()), nil
}

func (d *BTreeDir) findChildBlock(searchKey types.Constant) (file.BlockID, error) {
	slot, err := d.contents.FindSlotBefore(searchKey)
	if err != nil {
		return file.BlockID{}, err
	}
	numRecs, err := d.contents.GetNumRecs()
	if err != nil {
		return file.BlockID{}, err
	}
	if slot+1 < numRecs {
		v, err := d.contents.GetDataVal(slot + 1)
		if err != nil {
			return file.BlockID{}, err
		}
		if v.Equals(searchKey) {
			slot++
		}
	}
	blockNum, err := d.contents.GetChildNum(slot)
	if err != nil {
		return file.BlockID{}, err
	}
	return file.NewBlockID(d.fileName, blockNum), nil
}
