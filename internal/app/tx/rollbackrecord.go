package tx

import (
	"bytes"
	"fmt"

	"quilldb/internal/app/log"
)

// rollbackRecord marks transaction Txnum as finished via rollback. A
// transaction's RecoveryManager.Rollback writes this, never a commit
// record, once doRollback has undone every one of its SETINT/SETSTRING
// writes.
type rollbackRecord struct {
	txnum int
}

func decodeRollbackRecord(rec []byte) (*rollbackRecord, error) {
	txnum, _ := getInt32(rec, 4)
	return &rollbackRecord{txnum: int(txnum)}, nil
}

func (r *rollbackRecord) Op() RecordType            { return Rollback }
func (r *rollbackRecord) TxNumber() int             { return r.txnum }
func (r *rollbackRecord) Undo(tx *Transaction) error { return nil }

func (r *rollbackRecord) String() string {
	return fmt.Sprintf("<ROLLBACK %d>", r.txnum)
}

// writeRollbackRecord appends a rollback record for txnum and returns its LSN.
func writeRollbackRecord(lm *log.LogManager, txnum int) (int, error) {
	var buf bytes.Buffer
	putInt32(&buf, int32(Rollback))
	putInt32(&buf, int32(txnum))
	return lm.Append(buf.Bytes())
}
