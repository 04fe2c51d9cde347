package tx

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/metrics"
)

var nextTxNum int64

func nextTxNumber() int {
	return int(atomic.AddInt64(&nextTxNum, 1))
}

// Transaction is the unit-of-work API every higher layer programs
// against: it hides locking, logging and buffer pinning behind
// get/set/size/append, and commits or rolls back as a whole (spec §4).
type Transaction struct {
	fm *file.FileManager
	lm *log.LogManager
	bm *buffer.Manager

	cm  *ConcurrencyManager
	rm  *RecoveryManager
	bl  *bufferList

	txnum int

	metrics *metrics.Registry
	log     zerolog.Logger
}

// NewTransaction begins a new transaction against the shared file, log
// and buffer managers.
func NewTransaction(fm *file.FileManager, lm *log.LogManager, bm *buffer.Manager, lockTable *LockTable, reg *metrics.Registry, lg zerolog.Logger) (*Transaction, error) {
	txnum := nextTxNumber()
	t := &Transaction{
		fm:      fm,
		lm:      lm,
		bm:      bm,
		cm:      NewConcurrencyManager(lockTable),
		bl:      newBufferList(bm),
		txnum:   txnum,
		metrics: reg,
		log:     lg,
	}
	rm, err := NewRecoveryManager(t, txnum, lm, bm, reg, lg)
	if err != nil {
		return nil, err
	}
	t.rm = rm
	return t, nil
}

// Commit flushes this transaction's writes, releases its locks, and
// unpins all of its buffers.
func (t *Transaction) Commit() error {
	if err := t.rm.Commit(); err != nil {
		return err
	}
	t.cm.Release()
	t.bl.unpinAll()
	t.log.Debug().Int("txnum", t.txnum).Msg("commit complete")
	return nil
}

// Rollback undoes this transaction's writes, releases its locks, and
// unpins all of its buffers.
func (t *Transaction) Rollback() error {
	if err := t.rm.Rollback(); err != nil {
		return err
	}
	t.cm.Release()
	t.bl.unpinAll()
	t.log.Debug().Int("txnum", t.txnum).Msg("rollback complete")
	return nil
}

// Recover flushes all buffers then runs crash recovery. Called before
// any other transaction starts, never concurrently with one.
func (t *Transaction) Recover() error {
	if err := t.bm.FlushAll(-1); err != nil {
		return err
	}
	return t.rm.Recover()
}

// Pin pins block on this transaction's behalf.
func (t *Transaction) Pin(block file.BlockID) error {
	return t.bl.pin(block)
}

// Unpin releases one of this transaction's pins on block.
func (t *Transaction) Unpin(block file.BlockID) {
	t.bl.unpin(block)
}

// GetInt returns the int at offset in block, after taking a shared lock.
func (t *Transaction) GetInt(block file.BlockID, offset int) (int, error) {
	if err := t.cm.SLock(block); err != nil {
		return 0, err
	}
	buff := t.bl.getBuffer(block)
	return int(buff.Contents().GetInt(offset)), nil
}

// GetString returns the string at offset in block, after taking a
// shared lock.
func (t *Transaction) GetString(block file.BlockID, offset int) (string, error) {
	if err := t.cm.SLock(block); err != nil {
		return "", err
	}
	buff := t.bl.getBuffer(block)
	return buff.Contents().GetString(offset), nil
}

// SetInt writes val at offset in block, after taking an exclusive lock.
// If okToLog, the old value is logged first so it can be undone.
func (t *Transaction) SetInt(block file.BlockID, offset int, val int, okToLog bool) error {
	if err := t.cm.XLock(block); err != nil {
		return err
	}
	buff := t.bl.getBuffer(block)
	lsn := -1
	if okToLog {
		var err error
		lsn, err = t.rm.SetInt(buff, offset)
		if err != nil {
			return err
		}
	}
	buff.Contents().SetInt(offset, int32(val))
	buff.SetModified(t.txnum, lsn)
	return nil
}

// SetString writes s at offset in block, after taking an exclusive
// lock. If okToLog, the old value is logged first so it can be undone.
func (t *Transaction) SetString(block file.BlockID, offset int, s string, okToLog bool) error {
	if err := t.cm.XLock(block); err != nil {
		return err
	}
	buff := t.bl.getBuffer(block)
	lsn := -1
	if okToLog {
		var err error
		lsn, err = t.rm.SetString(buff, offset)
		if err != nil {
			return err
		}
	}
	cap := len(buff.Contents().Contents()) - offset
	if err := buff.Contents().SetString(offset, s, cap); err != nil {
		return err
	}
	buff.SetModified(t.txnum, lsn)
	return nil
}

// Size returns the number of blocks in filename, after taking a shared
// lock on its end-of-file sentinel block so concurrent size checks
// don't block each other, while still serializing against Append.
func (t *Transaction) Size(filename string) (int, error) {
	dummy := file.NewBlockID(filename, file.EndOfFile)
	if err := t.cm.SLock(dummy); err != nil {
		return 0, err
	}
	return t.fm.Size(filename)
}

// Append allocates and returns a new block at the end of filename,
// after taking an exclusive lock on its end-of-file sentinel block.
func (t *Transaction) Append(filename string) (file.BlockID, error) {
	dummy := file.NewBlockID(filename, file.EndOfFile)
	if err := t.cm.XLock(dummy); err != nil {
		return file.BlockID{}, err
	}
	return t.fm.Append(filename, file.NewPage(t.fm.BlockSize()))
}

// BlockSize returns the shared file manager's fixed block size.
func (t *Transaction) BlockSize() int { return t.fm.BlockSize() }

// AvailableBuffs returns the number of currently unpinned buffer slots.
func (t *Transaction) AvailableBuffs() int { return t.bm.Available() }

// TxNumber returns this transaction's identifier, as logged in its
// start/commit/rollback records.
func (t *Transaction) TxNumber() int { return t.txnum }

func (t *Transaction) String() string {
	return fmt.Sprintf("tx[%d]", t.txnum)
}
