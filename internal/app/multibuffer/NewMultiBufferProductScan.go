package multibuffer

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/query"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// MultibufferProductScan joins lhsscan against the named table by
// scanning the table in buffer-sized chunks, rewinding lhsscan once per
// chunk rather than once per table record.
type MultibufferProductScan struct {
	tx           *tx.Transaction
	lhsscan      interfaces.Scan
	rhsscan      *ChunkScan
	prodscan     interfaces.Scan
	fileName     string
	layout       *record.Layout
	chunkSize    int
	nextBlockNum int
	fileSize     int
}

func NewMultiBufferProductScan(t *tx.Transaction, lhsscan interfaces.Scan, tableName string, layout *record.Layout) (*MultibufferProductScan, error) {
	fileName := tableName + ".tbl"
	size, err := t.Size(fileName)
	if err != nil {
		return nil, err
	}

	mps := &MultibufferProductScan{
		tx:       t,
		lhsscan:  lhsscan,
		fileName: fileName,
		layout:   layout,
		fileSize: size,
	}

	available := t.AvailableBuffs()
	mps.chunkSize = BestFactor(available, mps.fileSize)

	if err := mps.BeforeFirst(); err != nil {
		return nil, err
	}
	return mps, nil
}

func (mps *MultibufferProductScan) BeforeFirst() error {
	mps.nextBlockNum = 0
	_, err := mps.UseNextChunk()
	return err
}

func (mps *MultibufferProductScan) Next() (bool, error) {
	for {
		ok, err := mps.prodscan.Next()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		more, err := mps.UseNextChunk()
		if err != nil {
			return false, err
		}
		if !more {
			return false, nil
		}
	}
}

func (mps *MultibufferProductScan) Close() error {
	if mps.prodscan != nil {
		return mps.prodscan.Close()
	}
	return nil
}

func (mps *MultibufferProductScan) GetVal(fieldName string) (types.Constant, error) {
	return mps.prodscan.GetVal(fieldName)
}

func (mps *MultibufferProductScan) GetInt(fieldName string) (int, error) {
	return mps.prodscan.GetInt(fieldName)
}

func (mps *MultibufferProductScan) GetString(fldname string) (string, error) {
	return mps.prodscan.GetString(fldname)
}

func (mps *MultibufferProductScan) HasField(fldname string) bool {
	return mps.prodscan.HasField(fldname)
}

// UseNextChunk advances to the next range of blocks from the right
// table, rewinding the left scan to its beginning for the new chunk.
func (mps *MultibufferProductScan) UseNextChunk() (bool, error) {
	if mps.nextBlockNum >= mps.fileSize {
		return false, nil
	}

	if mps.rhsscan != nil {
		if err := mps.rhsscan.Close(); err != nil {
			return false, err
		}
	}

	end := mps.nextBlockNum + mps.chunkSize - 1
	if end >= mps.fileSize {
		end = mps.fileSize - 1
	}

	rhsscan, err := NewChunkScan(mps.tx, mps.fileName, mps.layout, mps.nextBlockNum, end)
	if err != nil {
		return false, err
	}
	mps.rhsscan = rhsscan

	if err := mps.lhsscan.BeforeFirst(); err != nil {
		return false, err
	}

	prodscan, err := query.NewProductScan(mps.lhsscan, mps.rhsscan)
	if err != nil {
		return false, err
	}
	mps.prodscan = prodscan

	mps.nextBlockNum = end + 1
	return true, nil
}
