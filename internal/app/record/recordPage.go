package record

import (
	"quilldb/internal/app/file"
	"quilldb/internal/app/tx"
)

const (
	Empty = 0 // unused/deleted record slot
	Used  = 1 // active record slot
)

// RecordPage manages the fixed-length slots of records within a single
// block, according to a Layout.
type RecordPage struct {
	tx     *tx.Transaction
	block  file.BlockID
	layout *Layout
}

// NewRecordPage pins block and returns a RecordPage over it.
func NewRecordPage(t *tx.Transaction, block file.BlockID, layout *Layout) (*RecordPage, error) {
	if err := t.Pin(block); err != nil {
		return nil, err
	}
	return &RecordPage{tx: t, block: block, layout: layout}, nil
}

func (rp *RecordPage) Block() file.BlockID { return rp.block }

// GetInt returns the int stored in fieldname at slot.
func (rp *RecordPage) GetInt(slot int, fieldname string) (int, error) {
	fieldPos := rp.offset(slot) + rp.layout.Offset(fieldname)
	return rp.tx.GetInt(rp.block, fieldPos)
}

// GetString returns the string stored in fieldname at slot.
func (rp *RecordPage) GetString(slot int, fieldname string) (string, error) {
	fieldPos := rp.offset(slot) + rp.layout.Offset(fieldname)
	return rp.tx.GetString(rp.block, fieldPos)
}

// SetInt stores val in fieldname at slot.
func (rp *RecordPage) SetInt(slot int, fieldname string, val int) error {
	fieldPos := rp.offset(slot) + rp.layout.Offset(fieldname)
	return rp.tx.SetInt(rp.block, fieldPos, val, true)
}

// SetString stores val in fieldname at slot.
func (rp *RecordPage) SetString(slot int, fieldname string, val string) error {
	fieldPos := rp.offset(slot) + rp.layout.Offset(fieldname)
	return rp.tx.SetString(rp.block, fieldPos, val, true)
}

// Format initializes every slot in the block as empty with zeroed
// fields, without logging. TableScan does not call it: a block appended
// through Transaction.Append starts as all zeros, which already reads
// as empty slots with zeroed fields.
func (rp *RecordPage) Format() error {
	slot := 0
	for rp.isValidSlot(slot) {
		if err := rp.tx.SetInt(rp.block, rp.offset(slot), Empty, false); err != nil {
			return err
		}
		schema := rp.layout.Schema()
		for _, fieldname := range schema.Fields() {
			fieldPos := rp.offset(slot) + rp.layout.Offset(fieldname)
			var err error
			if schema.DataType(fieldname) == INTEGER {
				err = rp.tx.SetInt(rp.block, fieldPos, 0, false)
			} else {
				err = rp.tx.SetString(rp.block, fieldPos, "", false)
			}
			if err != nil {
				return err
			}
		}
		slot++
	}
	return nil
}

// Delete marks slot empty.
func (rp *RecordPage) Delete(slot int) error {
	return rp.setFlag(slot, Empty)
}

// NextAfter returns the next used slot strictly after slot, or -1.
func (rp *RecordPage) NextAfter(slot int) (int, error) {
	return rp.searchAfter(slot, Used)
}

// InsertAfter finds the next empty slot strictly after slot, marks it
// used, and returns it, or -1 if none remains in this block.
func (rp *RecordPage) InsertAfter(slot int) (int, error) {
	newSlot, err := rp.searchAfter(slot, Empty)
	if err != nil {
		return -1, err
	}
	if newSlot >= 0 {
		if err := rp.setFlag(newSlot, Used); err != nil {
			return -1, err
		}
	}
	return newSlot, nil
}

func (rp *RecordPage) offset(slot int) int {
	return slot * rp.layout.SlotSize()
}

func (rp *RecordPage) isValidSlot(slot int) bool {
	return rp.offset(slot+1) <= rp.tx.BlockSize()
}

func (rp *RecordPage) setFlag(slot int, flag int) error {
	return rp.tx.SetInt(rp.block, rp.offset(slot), flag, true)
}

func (rp *RecordPage) searchAfter(slot int, flag int) (int, error) {
	slot++
	for rp.isValidSlot(slot) {
		slotFlag, err := rp.tx.GetInt(rp.block, rp.offset(slot))
		if err != nil {
			return -1, err
		}
		if slotFlag == flag {
			return slot, nil
		}
		slot++
	}
	return -1, nil
}
