package tx

import (
	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
)

// bufferList tracks the buffers a single transaction currently has
// pinned, so Transaction can hand back the right *buffer.Buffer for a
// block without re-pinning, and release everything at commit/rollback.
type bufferList struct {
	bm     *buffer.Manager
	buffers map[file.BlockID]*buffer.Buffer
	pins    []file.BlockID
}

func newBufferList(bm *buffer.Manager) *bufferList {
	return &bufferList{
		bm:      bm,
		buffers: make(map[file.BlockID]*buffer.Buffer),
	}
}

// getBuffer returns the buffer already pinned for block, or nil.
func (bl *bufferList) getBuffer(block file.BlockID) *buffer.Buffer {
	return bl.buffers[block]
}

// pin pins block (tracking every pin, even repeats on the same block, so
// unpin's reference counting matches).
func (bl *bufferList) pin(block file.BlockID) error {
	buff, err := bl.bm.Pin(block)
	if err != nil {
		return err
	}
	bl.buffers[block] = buff
	bl.pins = append(bl.pins, block)
	return nil
}

// unpin releases one pin on block. Once no pin remains for it, the
// buffer entry is dropped from the map.
func (bl *bufferList) unpin(block file.BlockID) {
	buff, ok := bl.buffers[block]
	if !ok {
		return
	}
	bl.bm.Unpin(buff)

	for i, b := range bl.pins {
		if b == block {
			bl.pins = append(bl.pins[:i], bl.pins[i+1:]...)
			break
		}
	}
	stillPinned := false
	for _, b := range bl.pins {
		if b == block {
			stillPinned = true
			break
		}
	}
	if !stillPinned {
		delete(bl.buffers, block)
	}
}

// unpinAll releases every pin this transaction holds, for commit or
// rollback.
func (bl *bufferList) unpinAll() {
	for _, block := range bl.pins {
		if buff, ok := bl.buffers[block]; ok {
			bl.bm.Unpin(buff)
		}
	}
	bl.buffers = make(map[file.BlockID]*buffer.Buffer)
	bl.pins = nil
}
