package multibuffer

import (
	"quilldb/internal/app/file"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// ChunkScan scans a contiguous range of blocks of one file as a single
// unit, backed by a RecordPage per block held open for the chunk's
// lifetime.
type ChunkScan struct {
	buffs       []*record.RecordPage
	tx          *tx.Transaction
	fileName    string
	layout      *record.Layout
	startbnum   int
	endbnum     int
	currentbnum int
	rp          *record.RecordPage
	currentSlot int
}

func NewChunkScan(t *tx.Transaction, filename string, layout *record.Layout, startbnum, endbnum int) (*ChunkScan, error) {
	cs := &ChunkScan{
		tx:        t,
		fileName:  filename,
		layout:    layout,
		startbnum: startbnum,
		endbnum:   endbnum,
		buffs:     make([]*record.RecordPage, 0, endbnum-startbnum+1),
	}

	for i := startbnum; i <= endbnum; i++ {
		block := file.NewBlockID(filename, i)
		rp, err := record.NewRecordPage(t, block, layout)
		if err != nil {
			return nil, err
		}
		cs.buffs = append(cs.buffs, rp)
	}

	if err := cs.moveToBlock(startbnum); err != nil {
		return nil, err
	}
	return cs, nil
}

func (cs *ChunkScan) Close() error {
	for i := 0; i < len(cs.buffs); i++ {
		block := file.NewBlockID(cs.fileName, cs.startbnum+i)
		cs.tx.Unpin(block)
	}
	return nil
}

func (cs *ChunkScan) BeforeFirst() error {
	return cs.moveToBlock(cs.startbnum)
}

func (cs *ChunkScan) Next() (bool, error) {
	slot, err := cs.rp.NextAfter(cs.currentSlot)
	if err != nil {
		return false, err
	}
	cs.currentSlot = slot

	for cs.currentSlot < 0 {
		if cs.currentbnum == cs.endbnum {
			return false, nil
		}
		if err := cs.moveToBlock(cs.rp.Block().Number() + 1); err != nil {
			return false, err
		}
		slot, err := cs.rp.NextAfter(cs.currentSlot)
		if err != nil {
			return false, err
		}
		cs.currentSlot = slot
	}

	return true, nil
}

func (cs *ChunkScan) GetInt(fldname string) (int, error) {
	return cs.rp.GetInt(cs.currentSlot, fldname)
}

func (cs *ChunkScan) GetString(fldname string) (string, error) {
	return cs.rp.GetString(cs.currentSlot, fldname)
}

func (cs *ChunkScan) GetVal(fldname string) (types.Constant, error) {
	if cs.layout.Schema().DataType(fldname) == record.INTEGER {
		i, err := cs.GetInt(fldname)
		if err != nil {
			return types.Constant{}, err
		}
		return types.NewConstantInt(i), nil
	}
	s, err := cs.GetString(fldname)
	if err != nil {
		return types.Constant{}, err
	}
	return types.NewConstantString(s), nil
}

func (cs *ChunkScan) HasField(fldname string) bool {
	return cs.layout.Schema().HasField(fldname)
}

func (cs *ChunkScan) moveToBlock(blockNum int) error {
	cs.currentbnum = blockNum
	cs.rp = cs.buffs[cs.currentbnum-cs.startbnum]
	cs.currentSlot = -1
	return nil
}
