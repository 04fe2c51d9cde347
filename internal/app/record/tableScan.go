package record

import (
	"quilldb/internal/app/file"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// TableScan implements interfaces.UpdateScan over a heap file of
// fixed-length record slots: it tracks a current block/slot position
// and moves forward block by block, appending a new block once the
// last one is full.
type TableScan struct {
	tx          *tx.Transaction
	layout      *Layout
	rp          *RecordPage
	filename    string
	currentSlot int
}

// NewTableScan opens a scan over tableName, creating its first block if
// the file is new.
func NewTableScan(t *tx.Transaction, tableName string, layout *Layout) (*TableScan, error) {
	ts := &TableScan{
		tx:          t,
		layout:      layout,
		filename:    tableName + ".tbl",
		currentSlot: -1,
	}

	size, err := t.Size(ts.filename)
	if err != nil {
		return nil, err
	}

	if size == 0 {
		if err := ts.moveToNewBlock(); err != nil {
			return nil, err
		}
	} else if err := ts.moveToBlock(0); err != nil {
		return nil, err
	}

	return ts, nil
}

func (ts *TableScan) BeforeFirst() error {
	return ts.moveToBlock(0)
}

// Next advances to the next used slot, crossing into following blocks.
// It returns false once the last block has no further used slot.
func (ts *TableScan) Next() (bool, error) {
	slot, err := ts.rp.NextAfter(ts.currentSlot)
	if err != nil {
		return false, err
	}
	ts.currentSlot = slot

	for ts.currentSlot < 0 {
		atLast, err := ts.atLastBlock()
		if err != nil {
			return false, err
		}
		if atLast {
			return false, nil
		}
		if err := ts.moveToBlock(ts.rp.Block().Number() + 1); err != nil {
			return false, err
		}
		slot, err := ts.rp.NextAfter(ts.currentSlot)
		if err != nil {
			return false, err
		}
		ts.currentSlot = slot
	}
	return true, nil
}

func (ts *TableScan) GetInt(fieldname string) (int, error) {
	return ts.rp.GetInt(ts.currentSlot, fieldname)
}

func (ts *TableScan) GetString(fieldname string) (string, error) {
	return ts.rp.GetString(ts.currentSlot, fieldname)
}

// GetVal returns fieldname's value as a type-independent Constant,
// dispatching on the field's declared type.
func (ts *TableScan) GetVal(fieldname string) (types.Constant, error) {
	if ts.layout.Schema().DataType(fieldname) == INTEGER {
		v, err := ts.GetInt(fieldname)
		if err != nil {
			return types.Constant{}, err
		}
		return types.NewConstantInt(v), nil
	}
	v, err := ts.GetString(fieldname)
	if err != nil {
		return types.Constant{}, err
	}
	return types.NewConstantString(v), nil
}

// SetVal stores val into fieldname, dispatching on the field's
// declared type.
func (ts *TableScan) SetVal(fieldname string, val types.Constant) error {
	if ts.layout.Schema().DataType(fieldname) == INTEGER {
		return ts.SetInt(fieldname, *val.AsInt())
	}
	return ts.SetString(fieldname, *val.AsString())
}

func (ts *TableScan) Close() error {
	if ts.rp != nil {
		ts.tx.Unpin(ts.rp.Block())
	}
	return nil
}

func (ts *TableScan) moveToBlock(blockNum int) error {
	if err := ts.Close(); err != nil {
		return err
	}
	block := file.NewBlockID(ts.filename, blockNum)
	rp, err := NewRecordPage(ts.tx, block, ts.layout)
	if err != nil {
		return err
	}
	ts.rp = rp
	ts.currentSlot = -1
	return nil
}

func (ts *TableScan) moveToNewBlock() error {
	if err := ts.Close(); err != nil {
		return err
	}
	block, err := ts.tx.Append(ts.filename)
	if err != nil {
		return err
	}
	rp, err := NewRecordPage(ts.tx, block, ts.layout)
	if err != nil {
		return err
	}
	ts.rp = rp
	ts.currentSlot = -1
	return nil
}

func (ts *TableScan) SetInt(fieldname string, val int) error {
	return ts.rp.SetInt(ts.currentSlot, fieldname, val)
}

func (ts *TableScan) SetString(fieldname string, val string) error {
	return ts.rp.SetString(ts.currentSlot, fieldname, val)
}

// Insert finds the next free slot, appending a new block if the table
// is entirely full, and positions the scan there.
func (ts *TableScan) Insert() error {
	slot, err := ts.rp.InsertAfter(ts.currentSlot)
	if err != nil {
		return err
	}
	ts.currentSlot = slot

	for ts.currentSlot < 0 {
		atLast, err := ts.atLastBlock()
		if err != nil {
			return err
		}
		if atLast {
			if err := ts.moveToNewBlock(); err != nil {
				return err
			}
		} else if err := ts.moveToBlock(ts.rp.Block().Number() + 1); err != nil {
			return err
		}
		slot, err := ts.rp.InsertAfter(ts.currentSlot)
		if err != nil {
			return err
		}
		ts.currentSlot = slot
	}
	return nil
}

func (ts *TableScan) Delete() error {
	return ts.rp.Delete(ts.currentSlot)
}

func (ts *TableScan) HasField(fieldname string) bool {
	return ts.layout.Schema().HasField(fieldname)
}

// MoveToRID releases the current block and repositions the scan at the
// block and slot rid names.
func (ts *TableScan) MoveToRID(rid RID) error {
	if err := ts.Close(); err != nil {
		return err
	}
	block := file.NewBlockID(ts.filename, rid.BlockNumber())
	rp, err := NewRecordPage(ts.tx, block, ts.layout)
	if err != nil {
		return err
	}
	ts.rp = rp
	ts.currentSlot = rid.Slot()
	return nil
}

func (ts *TableScan) GetRID() (RID, error) {
	return NewRID(ts.rp.Block().Number(), ts.currentSlot), nil
}

func (ts *TableScan) atLastBlock() (bool, error) {
	size, err := ts.tx.Size(ts.filename)
	if err != nil {
		return false, err
	}
	return ts.rp.Block().Number() == size-1, nil
}
