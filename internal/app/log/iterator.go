package log

import (
	"fmt"

	"quilldb/internal/app/file"
)

// Iterator walks log records in reverse chronological order: within a
// block by following back-pointers from its tail pointer down to 0, then
// by opening the previous block number and restarting from that block's
// own tail pointer (spec §4.4, I8). Must be consumed serially by a
// single goroutine.
type Iterator struct {
	fm    *file.FileManager
	block file.BlockID
	page  *file.Page
	pos   int // header offset of the next record Next() will return
}

func newIterator(fm *file.FileManager, blk file.BlockID) (*Iterator, error) {
	it := &Iterator{
		fm:    fm,
		block: blk,
		page:  file.NewPage(fm.BlockSize()),
	}
	if err := it.loadBlock(blk); err != nil {
		return nil, err
	}
	return it, nil
}

func (it *Iterator) loadBlock(blk file.BlockID) error {
	if err := it.fm.Read(blk, it.page); err != nil {
		return fmt.Errorf("read log block %v: %w", blk, err)
	}
	it.block = blk
	it.pos = int(it.page.GetInt(0))
	return nil
}

// HasNext reports whether another record remains: either the current
// block still has an unread record (pos != 0), or an earlier block
// exists to continue from.
func (it *Iterator) HasNext() bool {
	return it.pos != 0 || it.block.Number() > 0
}

// Next returns the next record's raw payload bytes and advances the
// cursor. Callers decode the payload according to its leading tag.
func (it *Iterator) Next() ([]byte, error) {
	if it.pos == 0 {
		if err := it.loadBlock(file.NewBlockID(it.block.FileName(), it.block.Number()-1)); err != nil {
			return nil, err
		}
	}

	rec := it.page.GetBytes(it.pos)
	payloadLen := it.page.PayloadLen(it.pos)
	backPtrPos := it.pos + 4 + payloadLen
	it.pos = int(it.page.GetInt(backPtrPos))
	return rec, nil
}
