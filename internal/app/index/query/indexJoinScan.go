package query

import (
	"quilldb/internal/app/index"
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// IndexJoinScan joins lhs to rhs through idx: for each lhs record it
// repositions idx at the join field's value and iterates every rhs
// record the index names, avoiding a full rhs scan per lhs record.
type IndexJoinScan struct {
	lhs       interfaces.Scan
	idx       index.Index
	joinField string
	rhs       *record.TableScan
}

func NewIndexJoinScan(lhs interfaces.Scan, idx index.Index, joinField string, rhs *record.TableScan) (*IndexJoinScan, error) {
	ijs := &IndexJoinScan{
		lhs:       lhs,
		idx:       idx,
		joinField: joinField,
		rhs:       rhs,
	}
	if err := ijs.BeforeFirst(); err != nil {
		return nil, err
	}
	return ijs, nil
}

// BeforeFirst positions lhs at its first record and the index at the
// first entry matching lhs's current join-field value.
func (ijs *IndexJoinScan) BeforeFirst() error {
	if err := ijs.lhs.BeforeFirst(); err != nil {
		return err
	}
	if _, err := ijs.lhs.Next(); err != nil {
		return err
	}
	return ijs.resetIndex()
}

// Next advances the index; when it runs dry, advances lhs to its next
// record and repositions the index there, until either side is
// exhausted.
func (ijs *IndexJoinScan) Next() (bool, error) {
	for {
		ok, err := ijs.idx.Next()
		if err != nil {
			return false, err
		}
		if ok {
			rid, err := ijs.idx.GetDataRid()
			if err != nil {
				return false, err
			}
			if err := ijs.rhs.MoveToRID(rid); err != nil {
				return false, err
			}
			return true, nil
		}
		lhsOk, err := ijs.lhs.Next()
		if err != nil {
			return false, err
		}
		if !lhsOk {
			return false, nil
		}
		if err := ijs.resetIndex(); err != nil {
			return false, err
		}
	}
}

func (ijs *IndexJoinScan) GetInt(fldName string) (int, error) {
	if ijs.rhs.HasField(fldName) {
		return ijs.rhs.GetInt(fldName)
	}
	return ijs.lhs.GetInt(fldName)
}

func (ijs *IndexJoinScan) GetVal(fldName string) (types.Constant, error) {
	if ijs.rhs.HasField(fldName) {
		return ijs.rhs.GetVal(fldName)
	}
	return ijs.lhs.GetVal(fldName)
}

func (ijs *IndexJoinScan) GetString(fldName string) (string, error) {
	if ijs.rhs.HasField(fldName) {
		return ijs.rhs.GetString(fldName)
	}
	return ijs.lhs.GetString(fldName)
}

func (ijs *IndexJoinScan) HasField(fldName string) bool {
	return ijs.rhs.HasField(fldName) || ijs.lhs.HasField(fldName)
}

func (ijs *IndexJoinScan) Close() error {
	if err := ijs.lhs.Close(); err != nil {
		return err
	}
	if err := ijs.idx.Close(); err != nil {
		return err
	}
	return ijs.rhs.Close()
}

func (ijs *IndexJoinScan) resetIndex() error {
	searchKey, err := ijs.lhs.GetVal(ijs.joinField)
	if err != nil {
		return err
	}
	return ijs.idx.BeforeFirst(searchKey)
}
