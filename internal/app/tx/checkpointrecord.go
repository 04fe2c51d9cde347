package tx

import (
	"bytes"

	"quilldb/internal/app/log"
)

// checkpointRecord marks a point after which recovery need not look
// further back: every transaction live before it has either committed,
// rolled back, or will be found still active by the reverse scan.
type checkpointRecord struct{}

func decodeCheckpointRecord(rec []byte) (*checkpointRecord, error) {
	return &checkpointRecord{}, nil
}

func (r *checkpointRecord) Op() RecordType   { return Checkpoint }
func (r *checkpointRecord) TxNumber() int    { return -1 }
func (r *checkpointRecord) Undo(tx *Transaction) error { return nil }

func (r *checkpointRecord) String() string { return "<CHECKPOINT>" }

// writeCheckpointRecord appends a checkpoint record and returns its LSN.
func writeCheckpointRecord(lm *log.LogManager) (int, error) {
	var buf bytes.Buffer
	putInt32(&buf, int32(Checkpoint))
	return lm.Append(buf.Bytes())
}
