package materialize

import (
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// SortScan merges one or two sorted runs (each a TableScan over a temp
// table) into a single sorted stream.
type SortScan struct {
	s1, s2       *record.TableScan
	currentScan  *record.TableScan
	comp         *RecordComparator
	hasMore1     bool
	hasMore2     bool
	savedRID1    record.RID
	savedRID2    record.RID
	hasSavedRID2 bool
}

func NewSortScan(runs []*TempTable, comp *RecordComparator) (*SortScan, error) {
	s1, err := runs[0].Open()
	if err != nil {
		return nil, err
	}
	hasMore1, err := s1.Next()
	if err != nil {
		return nil, err
	}

	var s2 *record.TableScan
	var hasMore2 bool

	if len(runs) > 1 {
		s2, err = runs[1].Open()
		if err != nil {
			return nil, err
		}
		hasMore2, err = s2.Next()
		if err != nil {
			return nil, err
		}
	}

	return &SortScan{
		s1:       s1,
		s2:       s2,
		comp:     comp,
		hasMore1: hasMore1,
		hasMore2: hasMore2,
	}, nil
}

func (ss *SortScan) BeforeFirst() error {
	ss.currentScan = nil
	if err := ss.s1.BeforeFirst(); err != nil {
		return err
	}
	more, err := ss.s1.Next()
	if err != nil {
		return err
	}
	ss.hasMore1 = more

	if ss.s2 != nil {
		if err := ss.s2.BeforeFirst(); err != nil {
			return err
		}
		more, err := ss.s2.Next()
		if err != nil {
			return err
		}
		ss.hasMore2 = more
	}
	return nil
}

func (ss *SortScan) Next() (bool, error) {
	if ss.currentScan != nil {
		var err error
		if ss.currentScan == ss.s1 {
			ss.hasMore1, err = ss.s1.Next()
		} else if ss.currentScan == ss.s2 {
			ss.hasMore2, err = ss.s2.Next()
		}
		if err != nil {
			return false, err
		}
	}

	if !ss.hasMore1 && !ss.hasMore2 {
		return false, nil
	} else if ss.hasMore1 && ss.hasMore2 {
		cmp, err := ss.comp.Compare(ss.s1, ss.s2)
		if err != nil {
			return false, err
		}
		if cmp < 0 {
			ss.currentScan = ss.s1
		} else {
			ss.currentScan = ss.s2
		}
	} else if ss.hasMore1 {
		ss.currentScan = ss.s1
	} else {
		ss.currentScan = ss.s2
	}

	return true, nil
}

func (ss *SortScan) Close() error {
	if err := ss.s1.Close(); err != nil {
		return err
	}
	if ss.s2 != nil {
		return ss.s2.Close()
	}
	return nil
}

func (ss *SortScan) GetVal(fldname string) (types.Constant, error) {
	return ss.currentScan.GetVal(fldname)
}

func (ss *SortScan) GetInt(fldname string) (int, error) {
	return ss.currentScan.GetInt(fldname)
}

func (ss *SortScan) GetString(fldname string) (string, error) {
	return ss.currentScan.GetString(fldname)
}

func (ss *SortScan) HasField(fldname string) bool {
	return ss.currentScan.HasField(fldname)
}

// SavePosition records both runs' current RIDs so a merge join can
// rewind s2 to the start of a matching group.
func (ss *SortScan) SavePosition() error {
	rid1, err := ss.s1.GetRID()
	if err != nil {
		return err
	}
	ss.savedRID1 = rid1

	ss.hasSavedRID2 = false
	if ss.s2 != nil {
		rid2, err := ss.s2.GetRID()
		if err != nil {
			return err
		}
		ss.savedRID2 = rid2
		ss.hasSavedRID2 = true
	}
	return nil
}

// RestorePosition must be preceded by SavePosition. It moves both runs
// back to the saved RIDs and makes the saved record current again.
func (ss *SortScan) RestorePosition() error {
	if err := ss.s1.MoveToRID(ss.savedRID1); err != nil {
		return err
	}
	if ss.s2 != nil && ss.hasSavedRID2 {
		if err := ss.s2.MoveToRID(ss.savedRID2); err != nil {
			return err
		}
	}

	ss.currentScan = nil
	ss.hasMore1 = true
	if ss.s2 != nil {
		ss.hasMore2 = true
	}
	_, err := ss.Next()
	return err
}
