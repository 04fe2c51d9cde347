package tx

import (
	"bytes"
	"fmt"

	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
)

// setStringRecord records the value a string field held before a write
// (bug fix: the field this undoes is always a string-set, never the
// int-set BTPage keys were once mistakenly written through).
type setStringRecord struct {
	txnum  int
	block  file.BlockID
	offset int
	oldval string
}

func decodeSetStringRecord(rec []byte) (*setStringRecord, error) {
	txnum, pos := getInt32(rec, 4)
	filename, pos := getString(rec, pos)
	blocknum, pos := getInt32(rec, pos)
	offset, pos := getInt32(rec, pos)
	oldval, _ := getString(rec, pos)
	return &setStringRecord{
		txnum:  int(txnum),
		block:  file.NewBlockID(filename, int(blocknum)),
		offset: int(offset),
		oldval: oldval,
	}, nil
}

func (r *setStringRecord) Op() RecordType { return SetString }
func (r *setStringRecord) TxNumber() int  { return r.txnum }

// Undo restores the field to its pre-write value, without logging the
// restore itself.
func (r *setStringRecord) Undo(tx *Transaction) error {
	if err := tx.Pin(r.block); err != nil {
		return err
	}
	defer tx.Unpin(r.block)
	return tx.SetString(r.block, r.offset, r.oldval, false)
}

func (r *setStringRecord) String() string {
	return fmt.Sprintf("<SETSTRING %d %v %d %s>", r.txnum, r.block, r.offset, r.oldval)
}

// writeSetStringRecord appends a setstring record and returns its LSN.
func writeSetStringRecord(lm *log.LogManager, txnum int, block file.BlockID, offset int, oldval string) (int, error) {
	var buf bytes.Buffer
	putInt32(&buf, int32(SetString))
	putInt32(&buf, int32(txnum))
	putString(&buf, block.FileName())
	putInt32(&buf, int32(block.Number()))
	putInt32(&buf, int32(offset))
	putString(&buf, oldval)
	return lm.Append(buf.Bytes())
}
