package btree

import (
	"quilldb/internal/app/file"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// BTPage implements the common record layout shared by B-tree directory
// and leaf blocks: a 4-byte flag, a 4-byte record count, then a sorted
// array of fixed-size slots (spec §5, directory and leaf pages).
type BTPage struct {
	tx           *tx.Transaction
	currentBlock file.BlockID
	layout       *record.Layout
}

// NewBTPage pins currentBlock and wraps it as a BTPage.
func NewBTPage(t *tx.Transaction, currentBlock file.BlockID, layout *record.Layout) (*BTPage, error) {
	if err := t.Pin(currentBlock); err != nil {
		return nil, err
	}
	return &BTPage{tx: t, currentBlock: currentBlock, layout: layout}, nil
}

// FindSlotBefore returns the slot immediately before the first record
// whose data value is >= searchKey.
func (p *BTPage) FindSlotBefore(searchKey types.Constant) (int, error) {
	slot := 0
	numRecs, err := p.GetNumRecs()
	if err != nil {
		return 0, err
	}
	for slot < numRecs {
		val, err := p.GetDataVal(slot)
		if err != nil {
			return 0, err
		}
		if val.CompareTo(searchKey) >= 0 {
			break
		}
		slot++
	}
	return slot - 1, nil
}

// Close unpins this page's block.
func (p *BTPage) Close() {
	p.tx.Unpin(p.currentBlock)
}

// IsFull reports whether one more record would overflow the block.
func (p *BTPage) IsFull() (bool, error) {
	numRecs, err := p.GetNumRecs()
	if err != nil {
		return false, err
	}
	return p.slotPos(numRecs+1) > p.tx.BlockSize(), nil
}

// Split creates a new block, moves every record from splitPos onward
// into it, and sets its flag. Returns the new block.
func (p *BTPage) Split(splitPos int, flag int) (file.BlockID, error) {
	newBlock, err := p.AppendNew(flag)
	if err != nil {
		return file.BlockID{}, err
	}
	newPage, err := NewBTPage(p.tx, newBlock, p.layout)
	if err != nil {
		return file.BlockID{}, err
	}
	if err := p.transferRecs(splitPos, newPage); err != nil {
		return file.BlockID{}, err
	}
	if err := newPage.SetFlag(flag); err != nil {
		return file.BlockID{}, err
	}
	newPage.Close()
	return newBlock, nil
}

// GetDataVal returns the data value (indexed value in a leaf, search
// key in a directory) stored at slot.
func (p *BTPage) GetDataVal(slot int) (types.Constant, error) {
	return p.getVal(slot, "dataval")
}

// GetFlag returns the page's flag field.
func (p *BTPage) GetFlag() (int, error) {
	v, err := p.tx.GetInt(p.currentBlock, 0)
	return v, err
}

// SetFlag updates the page's flag field.
func (p *BTPage) SetFlag(val int) error {
	return p.tx.SetInt(p.currentBlock, 0, val, true)
}

// AppendNew allocates a new block at the end of this page's file,
// formats it with flag, and pins it.
func (p *BTPage) AppendNew(flag int) (file.BlockID, error) {
	block, err := p.tx.Append(p.currentBlock.FileName())
	if err != nil {
		return file.BlockID{}, err
	}
	if err := p.tx.Pin(block); err != nil {
		return file.BlockID{}, err
	}
	if err := p.Format(block, flag); err != nil {
		return file.BlockID{}, err
	}
	return block, nil
}

// Format initializes block with flag, a zero record count, and
// zero-valued slots throughout.
func (p *BTPage) Format(block file.BlockID, flag int) error {
	if err := p.tx.SetInt(block, 0, flag, false); err != nil {
		return err
	}
	if err := p.tx.SetInt(block, 4, 0, false); err != nil {
		return err
	}
	recSize := p.layout.SlotSize()
	for pos := 2 * 4; pos+recSize <= p.tx.BlockSize(); pos += recSize {
		if err := p.makeDefaultRecord(block, pos); err != nil {
			return err
		}
	}
	return nil
}

func (p *BTPage) makeDefaultRecord(block file.BlockID, pos int) error {
	for _, fieldName := range p.layout.Schema().Fields() {
		offset := p.layout.Offset(fieldName)
		var err error
		if p.layout.Schema().DataType(fieldName) == record.INTEGER {
			err = p.tx.SetInt(block, pos+offset, 0, false)
		} else {
			err = p.tx.SetString(block, pos+offset, "", false)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// GetChildNum returns the child block number stored at slot (directory
// pages only).
func (p *BTPage) GetChildNum(slot int) (int, error) {
	return p.getInt(slot, "block")
}

// InsertDir inserts a directory entry (search key, child block) at slot.
func (p *BTPage) InsertDir(slot int, val types.Constant, blockNum int) error {
	if err := p.insert(slot); err != nil {
		return err
	}
	if err := p.setVal(slot, "dataval", val); err != nil {
		return err
	}
	return p.setInt(slot, "block", blockNum)
}

// GetDataRid returns the RID stored in the leaf entry at slot.
func (p *BTPage) GetDataRid(slot int) (record.RID, error) {
	blockNum, err := p.getInt(slot, "block")
	if err != nil {
		return record.RID{}, err
	}
	id, err := p.getInt(slot, "id")
	if err != nil {
		return record.RID{}, err
	}
	return record.NewRID(blockNum, id), nil
}

// InsertLeaf inserts a leaf entry (indexed value, RID) at slot.
func (p *BTPage) InsertLeaf(slot int, val types.Constant, rid record.RID) error {
	if err := p.insert(slot); err != nil {
		return err
	}
	if err := p.setVal(slot, "dataval", val); err != nil {
		return err
	}
	if err := p.setInt(slot, "block", rid.BlockNumber()); err != nil {
		return err
	}
	return p.setInt(slot, "id", rid.Slot())
}

// Delete removes the entry at slot, shifting later entries down.
func (p *BTPage) Delete(slot int) error {
	numRecs, err := p.GetNumRecs()
	if err != nil {
		return err
	}
	for i := slot + 1; i < numRecs; i++ {
		if err := p.copyRecord(i, i-1); err != nil {
			return err
		}
	}
	return p.SetNumRecs(numRecs - 1)
}

// GetNumRecs returns the number of entries currently stored in this page.
func (p *BTPage) GetNumRecs() (int, error) {
	return p.tx.GetInt(p.currentBlock, 4)
}

func (p *BTPage) getInt(slot int, fieldName string) (int, error) {
	pos := p.fldPos(slot, fieldName)
	return p.tx.GetInt(p.currentBlock, pos)
}

func (p *BTPage) getString(slot int, fldName string) (string, error) {
	pos := p.fldPos(slot, fldName)
	return p.tx.GetString(p.currentBlock, pos)
}

func (p *BTPage) getVal(slot int, fldName string) (types.Constant, error) {
	fieldType := p.layout.Schema().DataType(fldName)
	if fieldType == record.INTEGER {
		v, err := p.getInt(slot, fldName)
		if err != nil {
			return types.Constant{}, err
		}
		return types.NewConstantInt(v), nil
	}
	v, err := p.getString(slot, fldName)
	if err != nil {
		return types.Constant{}, err
	}
	return types.NewConstantString(v), nil
}

func (p *BTPage) setInt(slot int, fldName string, val int) error {
	pos := p.fldPos(slot, fldName)
	return p.tx.SetInt(p.currentBlock, pos, val, true)
}

func (p *BTPage) setString(slot int, fldName string, val string) error {
	pos := p.fldPos(slot, fldName)
	return p.tx.SetString(p.currentBlock, pos, val, true)
}

// setVal stores val into fldName at slot, dispatching on the field's
// declared type — string-typed fields always go through SetString
// (bug fix: never through the int path, regardless of val's origin).
func (p *BTPage) setVal(slot int, fldName string, val types.Constant) error {
	fieldType := p.layout.Schema().DataType(fldName)
	if fieldType == record.INTEGER {
		return p.setInt(slot, fldName, *val.AsInt())
	}
	return p.setString(slot, fldName, *val.AsString())
}

// SetNumRecs updates the page's stored entry count.
func (p *BTPage) SetNumRecs(n int) error {
	return p.tx.SetInt(p.currentBlock, 4, n, true)
}

func (p *BTPage) insert(slot int) error {
	numRecs, err := p.GetNumRecs()
	if err != nil {
		return err
	}
	for i := numRecs; i > slot; i-- {
		if err := p.copyRecord(i-1, i); err != nil {
			return err
		}
	}
	return p.SetNumRecs(numRecs + 1)
}

func (p *BTPage) copyRecord(from, to int) error {
	for _, fieldName := range p.layout.Schema().Fields() {
		v, err := p.getVal(from, fieldName)
		if err != nil {
			return err
		}
		if err := p.setVal(to, fieldName, v); err != nil {
			return err
		}
	}
	return nil
}

// transferRecs moves every entry from slot onward into dest, in order.
func (p *BTPage) transferRecs(slot int, dest *BTPage) error {
	destSlot := 0
	for {
		numRecs, err := p.GetNumRecs()
		if err != nil {
			return err
		}
		if slot >= numRecs {
			return nil
		}
		if err := dest.insert(destSlot); err != nil {
			return err
		}
		for _, fieldName := range p.layout.Schema().Fields() {
			v, err := p.getVal(slot, fieldName)
			if err != nil {
				return err
			}
			if err := dest.setVal(destSlot, fieldName, v); err != nil {
				return err
			}
		}
		if err := p.Delete(slot); err != nil {
			return err
		}
		destSlot++
		// slot does not advance: Delete shifted the remaining records down.
	}
}

func (p *BTPage) fldPos(slot int, fldName string) int {
	offset := p.layout.Offset(fldName)
	return p.slotPos(slot) + offset
}

func (p *BTPage) slotPos(slot int) int {
	slotSize := p.layout.SlotSize()
	return 4 + 4 + slot*slotSize
}
