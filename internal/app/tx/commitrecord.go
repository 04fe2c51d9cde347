package tx

import (
	"bytes"
	"fmt"

	"quilldb/internal/app/log"
)

// commitRecord marks transaction Txnum as finished and durable.
// Recovery's reverse scan treats Txnum as finished from the first
// (i.e. latest) commit or rollback record it encounters for it.
type commitRecord struct {
	txnum int
}

func decodeCommitRecord(rec []byte) (*commitRecord, error) {
	txnum, _ := getInt32(rec, 4)
	return &commitRecord{txnum: int(txnum)}, nil
}

func (r *commitRecord) Op() RecordType            { return Commit }
func (r *commitRecord) TxNumber() int             { return r.txnum }
func (r *commitRecord) Undo(tx *Transaction) error { return nil }

func (r *commitRecord) String() string {
	return fmt.Sprintf("<COMMIT %d>", r.txnum)
}

// writeCommitRecord appends a commit record for txnum and returns its LSN.
func writeCommitRecord(lm *log.LogManager, txnum int) (int, error) {
	var buf bytes.Buffer
	putInt32(&buf, int32(Commit))
	putInt32(&buf, int32(txnum))
	return lm.Append(buf.Bytes())
}
