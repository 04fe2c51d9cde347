package tx

import (
	"bytes"
	"fmt"

	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
)

// setIntRecord records the value an int field held before a write, so
// recovery can restore it.
type setIntRecord struct {
	txnum  int
	block  file.BlockID
	offset int
	oldval int32
}

func decodeSetIntRecord(rec []byte) (*setIntRecord, error) {
	txnum, pos := getInt32(rec, 4)
	filename, pos := getString(rec, pos)
	blocknum, pos := getInt32(rec, pos)
	offset, pos := getInt32(rec, pos)
	oldval, _ := getInt32(rec, pos)
	return &setIntRecord{
		txnum:  int(txnum),
		block:  file.NewBlockID(filename, int(blocknum)),
		offset: int(offset),
		oldval: oldval,
	}, nil
}

func (r *setIntRecord) Op() RecordType { return SetInt }
func (r *setIntRecord) TxNumber() int  { return r.txnum }

// Undo restores the field to its pre-write value, without logging the
// restore itself (it would be pointless to log an undo).
func (r *setIntRecord) Undo(tx *Transaction) error {
	if err := tx.Pin(r.block); err != nil {
		return err
	}
	defer tx.Unpin(r.block)
	return tx.SetInt(r.block, r.offset, int(r.oldval), false)
}

func (r *setIntRecord) String() string {
	return fmt.Sprintf("<SETINT %d %v %d %d>", r.txnum, r.block, r.offset, r.oldval)
}

// writeSetIntRecord appends a setint record and returns its LSN.
func writeSetIntRecord(lm *log.LogManager, txnum int, block file.BlockID, offset int, oldval int) (int, error) {
	var buf bytes.Buffer
	putInt32(&buf, int32(SetInt))
	putInt32(&buf, int32(txnum))
	putString(&buf, block.FileName())
	putInt32(&buf, int32(block.Number()))
	putInt32(&buf, int32(offset))
	putInt32(&buf, int32(oldval))
	return lm.Append(buf.Bytes())
}
