package query

import (
	"quilldb/internal/app/index"
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// IndexSelectScan implements interfaces.Scan over an index: advancing
// positions the index to the next matching entry, then repositions the
// underlying table scan to that entry's RID.
type IndexSelectScan struct {
	ts  *record.TableScan
	idx index.Index
	val types.Constant
}

func NewIndexSelectScan(ts *record.TableScan, idx index.Index, val types.Constant) (*IndexSelectScan, error) {
	scan := &IndexSelectScan{
		ts:  ts,
		idx: idx,
		val: val,
	}
	if err := scan.BeforeFirst(); err != nil {
		return nil, err
	}
	return scan, nil
}

func (iss *IndexSelectScan) BeforeFirst() error {
	return iss.idx.BeforeFirst(iss.val)
}

// Next advances the index to the next entry matching the selection
// value and, if found, moves the table scan to that entry's data
// record.
func (iss *IndexSelectScan) Next() (bool, error) {
	ok, err := iss.idx.Next()
	if err != nil || !ok {
		return false, err
	}
	rid, err := iss.idx.GetDataRid()
	if err != nil {
		return false, err
	}
	if err := iss.ts.MoveToRID(rid); err != nil {
		return false, err
	}
	return true, nil
}

func (iss *IndexSelectScan) GetInt(fldName string) (int, error) {
	return iss.ts.GetInt(fldName)
}

func (iss *IndexSelectScan) GetString(fldName string) (string, error) {
	return iss.ts.GetString(fldName)
}

func (iss *IndexSelectScan) GetVal(fldName string) (types.Constant, error) {
	return iss.ts.GetVal(fldName)
}

func (iss *IndexSelectScan) HasField(fldName string) bool {
	return iss.ts.HasField(fldName)
}

func (iss *IndexSelectScan) Close() error {
	if err := iss.idx.Close(); err != nil {
		return err
	}
	return iss.ts.Close()
}
