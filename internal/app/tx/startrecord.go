package tx

import (
	"bytes"
	"fmt"

	"quilldb/internal/app/log"
)

// startRecord marks the beginning of transaction Txnum's log entries.
// Recovery's reverse scan stops undoing Txnum's writes once it reaches
// this record.
type startRecord struct {
	txnum int
}

func decodeStartRecord(rec []byte) (*startRecord, error) {
	txnum, _ := getInt32(rec, 4)
	return &startRecord{txnum: int(txnum)}, nil
}

func (r *startRecord) Op() RecordType           { return Start }
func (r *startRecord) TxNumber() int            { return r.txnum }
func (r *startRecord) Undo(tx *Transaction) error { return nil }

func (r *startRecord) String() string {
	return fmt.Sprintf("<START %d>", r.txnum)
}

// writeStartRecord appends a start record for txnum and returns its LSN.
func writeStartRecord(lm *log.LogManager, txnum int) (int, error) {
	var buf bytes.Buffer
	putInt32(&buf, int32(Start))
	putInt32(&buf, int32(txnum))
	return lm.Append(buf.Bytes())
}
