package tx

import (
	"github.com/rs/zerolog"
	"quilldb/internal/app/buffer"
	"quilldb/internal/app/log"
	"quilldb/internal/metrics"
)

// RecoveryManager implements undo-only, no-force/steal-with-undo
// recovery: every SETINT/SETSTRING is logged with its old value before
// the page is touched, so a reverse scan of the log can repair a crash
// without ever needing redo (spec §4.6, §4.7).
type RecoveryManager struct {
	lm      *log.LogManager
	bm      *buffer.Manager
	tx      *Transaction
	txnum   int
	metrics *metrics.Registry
	log     zerolog.Logger
}

// NewRecoveryManager creates the recovery manager for tx and immediately
// writes its start record.
func NewRecoveryManager(tx *Transaction, txnum int, lm *log.LogManager, bm *buffer.Manager, reg *metrics.Registry, log zerolog.Logger) (*RecoveryManager, error) {
	rm := &RecoveryManager{lm: lm, bm: bm, tx: tx, txnum: txnum, metrics: reg, log: log}
	if _, err := writeStartRecord(lm, txnum); err != nil {
		return nil, err
	}
	return rm, nil
}

// Commit flushes every buffer this transaction modified, then writes and
// forces its commit record.
func (rm *RecoveryManager) Commit() error {
	if err := rm.bm.FlushAll(rm.txnum); err != nil {
		return err
	}
	lsn, err := writeCommitRecord(rm.lm, rm.txnum)
	if err != nil {
		return err
	}
	if err := rm.lm.Flush(lsn); err != nil {
		return err
	}
	rm.metrics.TxCommits.Inc()
	rm.log.Debug().Int("txnum", rm.txnum).Msg("transaction committed")
	return nil
}

// Rollback undoes every write this transaction made (reverse log order,
// stopping at its own start record), flushes the affected buffers, then
// writes and forces a rollback record — never a commit record (the
// rollback path must never mark an aborted transaction as committed).
func (rm *RecoveryManager) Rollback() error {
	if err := rm.doRollback(); err != nil {
		return err
	}
	if err := rm.bm.FlushAll(rm.txnum); err != nil {
		return err
	}
	lsn, err := writeRollbackRecord(rm.lm, rm.txnum)
	if err != nil {
		return err
	}
	if err := rm.lm.Flush(lsn); err != nil {
		return err
	}
	rm.metrics.TxRollbacks.Inc()
	rm.log.Debug().Int("txnum", rm.txnum).Msg("transaction rolled back")
	return nil
}

func (rm *RecoveryManager) doRollback() error {
	it, err := rm.lm.Iterator()
	if err != nil {
		return err
	}
	for it.HasNext() {
		bytes, err := it.Next()
		if err != nil {
			return err
		}
		rec, err := createLogRecord(bytes)
		if err != nil {
			return err
		}
		if rec.TxNumber() == rm.txnum {
			if rec.Op() == Start {
				return nil
			}
			if err := rec.Undo(rm.tx); err != nil {
				return err
			}
			rm.metrics.RecoveryUndos.Inc()
		}
	}
	return nil
}

// Recover runs crash recovery: a reverse pass over the whole log that
// undoes every SETINT/SETSTRING belonging to a transaction that never
// reached a commit or rollback record, stopping at a checkpoint or the
// start of the log. It then flushes and writes a fresh checkpoint.
func (rm *RecoveryManager) Recover() error {
	if err := rm.doRecover(); err != nil {
		return err
	}
	if err := rm.bm.FlushAll(rm.txnum); err != nil {
		return err
	}
	lsn, err := writeCheckpointRecord(rm.lm)
	if err != nil {
		return err
	}
	return rm.lm.Flush(lsn)
}

func (rm *RecoveryManager) doRecover() error {
	finished := make(map[int]bool)
	it, err := rm.lm.Iterator()
	if err != nil {
		return err
	}
	for it.HasNext() {
		bytes, err := it.Next()
		if err != nil {
			return err
		}
		rec, err := createLogRecord(bytes)
		if err != nil {
			return err
		}
		switch rec.Op() {
		case Checkpoint:
			return nil
		case Commit, Rollback:
			finished[rec.TxNumber()] = true
		default:
			if !finished[rec.TxNumber()] {
				if err := rec.Undo(rm.tx); err != nil {
					return err
				}
				if op := rec.Op(); op == SetInt || op == SetString {
					rm.metrics.RecoveryUndos.Inc()
				}
			}
		}
	}
	return nil
}

// SetInt logs the current value of the int at offset in buff's page
// before the caller overwrites it, returning the new record's LSN.
func (rm *RecoveryManager) SetInt(buff *buffer.Buffer, offset int) (int, error) {
	oldval := buff.Contents().GetInt(offset)
	return writeSetIntRecord(rm.lm, rm.txnum, buff.Block(), offset, int(oldval))
}

// SetString logs the current value of the string at offset in buff's
// page before the caller overwrites it, returning the new record's LSN.
func (rm *RecoveryManager) SetString(buff *buffer.Buffer, offset int) (int, error) {
	oldval := buff.Contents().GetString(offset)
	return writeSetStringRecord(rm.lm, rm.txnum, buff.Block(), offset, oldval)
}
