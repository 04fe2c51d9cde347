// Package buffer implements the bounded buffer pool: pages pinned to
// disk blocks, dirty tracking, and the write-ahead-log flush rule (spec
// §3 "Buffer slot", §4.3).
package buffer

import (
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
)

// none marks a buffer slot with no modifying transaction / no LSN.
const none = -1

// Buffer wraps one page-sized slot of the pool together with its
// bookkeeping: the block it is currently bound to (if any), how many
// times it is pinned, and — if dirty — which transaction last wrote it
// and at what LSN.
type Buffer struct {
	fm *file.FileManager
	lm *log.LogManager

	contents *file.Page
	block    file.BlockID
	bound    bool
	pins     int
	txnum    int
	lsn      int
}

func newBuffer(fm *file.FileManager, lm *log.LogManager) *Buffer {
	return &Buffer{
		fm:       fm,
		lm:       lm,
		contents: file.NewPage(fm.BlockSize()),
		txnum:    none,
		lsn:      none,
	}
}

// Contents returns the buffer's page.
func (b *Buffer) Contents() *file.Page { return b.contents }

// Block returns the block currently bound to this buffer. Only
// meaningful while the buffer is pinned.
func (b *Buffer) Block() file.BlockID { return b.block }

// SetModified marks the buffer dirty on behalf of txnum. If lsn is
// non-negative it replaces the buffer's recorded LSN (sentinel/no-log
// writes pass a negative lsn and keep the previous one, matching undo
// writes during rollback which must not advance the WAL requirement).
func (b *Buffer) SetModified(txnum, lsn int) {
	b.txnum = txnum
	if lsn >= 0 {
		b.lsn = lsn
	}
}

// IsPinned reports whether any transaction currently holds this buffer.
func (b *Buffer) IsPinned() bool { return b.pins > 0 }

// ModifyingTx returns the id of the transaction that last modified this
// buffer, or none if it is clean.
func (b *Buffer) ModifyingTx() int { return b.txnum }

// assignToBlock flushes the buffer if dirty, then rebinds it to block,
// reading the block's current contents from disk.
func (b *Buffer) assignToBlock(block file.BlockID) error {
	if err := b.flush(); err != nil {
		return err
	}
	b.block = block
	b.bound = true
	if err := b.fm.Read(block, b.contents); err != nil {
		return err
	}
	b.pins = 0
	return nil
}

// flush implements the WAL rule: the log is forced up to this buffer's
// LSN before the page is written to disk (spec invariant I3).
func (b *Buffer) flush() error {
	if b.txnum < 0 {
		return nil
	}
	if err := b.lm.Flush(b.lsn); err != nil {
		return err
	}
	if err := b.fm.Write(b.block, b.contents); err != nil {
		return err
	}
	b.txnum = none
	return nil
}

func (b *Buffer) pin()   { b.pins++ }
func (b *Buffer) unpin() { b.pins-- }
