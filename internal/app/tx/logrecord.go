package tx

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// RecordType tags a log record's shape (spec §3 "Log record").
type RecordType int32

const (
	Checkpoint RecordType = iota
	Start
	Commit
	Rollback
	SetInt
	SetString
)

// logRecord is any of the six record shapes the recovery manager writes.
// Undo is a no-op for Start/Commit/Rollback/Checkpoint; SetInt/SetString
// rewrite their target's previous value.
type logRecord interface {
	Op() RecordType
	TxNumber() int
	Undo(tx *Transaction) error
}

// createLogRecord decodes a raw log payload (as returned by
// log.Iterator.Next) into its typed record.
func createLogRecord(rec []byte) (logRecord, error) {
	if len(rec) < 4 {
		return nil, fmt.Errorf("log record too short: %d bytes", len(rec))
	}
	tag := RecordType(int32(binary.LittleEndian.Uint32(rec[0:4])))

	switch tag {
	case Checkpoint:
		return decodeCheckpointRecord(rec)
	case Start:
		return decodeStartRecord(rec)
	case Commit:
		return decodeCommitRecord(rec)
	case Rollback:
		return decodeRollbackRecord(rec)
	case SetInt:
		return decodeSetIntRecord(rec)
	case SetString:
		return decodeSetStringRecord(rec)
	default:
		return nil, fmt.Errorf("unknown log record tag %d", tag)
	}
}

// --- shared little-endian/length-prefixed encoding helpers ---

func putInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func putString(buf *bytes.Buffer, s string) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
	buf.Write(lenBuf[:])
	buf.WriteString(s)
}

func getInt32(rec []byte, pos int) (int32, int) {
	return int32(binary.LittleEndian.Uint32(rec[pos : pos+4])), pos + 4
}

func getString(rec []byte, pos int) (string, int) {
	length := int(binary.BigEndian.Uint32(rec[pos : pos+4]))
	start := pos + 4
	return string(rec[start : start+length]), start + length
}
