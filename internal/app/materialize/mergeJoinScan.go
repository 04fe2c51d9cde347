package materialize

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/types"
)

// MergeJoinScan joins two scans, both sorted on their respective join
// field, by walking them in lockstep instead of re-scanning s2 for
// every s1 record.
type MergeJoinScan struct {
	s1         interfaces.Scan
	s2         *SortScan
	fldName1   string
	fldName2   string
	joinVal    types.Constant
	hasJoinVal bool
}

func NewMergeJoinScan(s1 interfaces.Scan, s2 *SortScan, fldName1, fldName2 string) (*MergeJoinScan, error) {
	mjs := &MergeJoinScan{
		s1:       s1,
		s2:       s2,
		fldName1: fldName1,
		fldName2: fldName2,
	}

	if err := mjs.BeforeFirst(); err != nil {
		return nil, err
	}
	return mjs, nil
}

func (m *MergeJoinScan) Close() error {
	if err := m.s1.Close(); err != nil {
		return err
	}
	return m.s2.Close()
}

func (m *MergeJoinScan) BeforeFirst() error {
	if err := m.s1.BeforeFirst(); err != nil {
		return err
	}
	return m.s2.BeforeFirst()
}

// Next tries to keep s2 within the current join-value group before
// looking for the next matching group by advancing whichever scan has
// the smaller value.
func (m *MergeJoinScan) Next() (bool, error) {
	hasMore2, err := m.s2.Next()
	if err != nil {
		return false, err
	}
	if hasMore2 && m.hasJoinVal {
		v2, err := m.s2.GetVal(m.fldName2)
		if err != nil {
			return false, err
		}
		if v2.Equals(m.joinVal) {
			return true, nil
		}
	}

	hasMore1, err := m.s1.Next()
	if err != nil {
		return false, err
	}
	if hasMore1 && m.hasJoinVal {
		v1, err := m.s1.GetVal(m.fldName1)
		if err != nil {
			return false, err
		}
		if v1.Equals(m.joinVal) {
			if err := m.s2.RestorePosition(); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	for hasMore1 && hasMore2 {
		v1, err := m.s1.GetVal(m.fldName1)
		if err != nil {
			return false, err
		}
		v2, err := m.s2.GetVal(m.fldName2)
		if err != nil {
			return false, err
		}

		cmp := v1.CompareTo(v2)
		if cmp < 0 {
			hasMore1, err = m.s1.Next()
		} else if cmp > 0 {
			hasMore2, err = m.s2.Next()
		} else {
			if err := m.s2.SavePosition(); err != nil {
				return false, err
			}
			m.joinVal = v2
			m.hasJoinVal = true
			return true, nil
		}
		if err != nil {
			return false, err
		}
	}

	return false, nil
}

func (m *MergeJoinScan) GetInt(fldname string) (int, error) {
	if m.s1.HasField(fldname) {
		return m.s1.GetInt(fldname)
	}
	return m.s2.GetInt(fldname)
}

func (m *MergeJoinScan) GetString(fldname string) (string, error) {
	if m.s1.HasField(fldname) {
		return m.s1.GetString(fldname)
	}
	return m.s2.GetString(fldname)
}

func (m *MergeJoinScan) GetVal(fldname string) (types.Constant, error) {
	if m.s1.HasField(fldname) {
		return m.s1.GetVal(fldname)
	}
	return m.s2.GetVal(fldname)
}

func (m *MergeJoinScan) HasField(fldname string) bool {
	return m.s1.HasField(fldname) || m.s2.HasField(fldname)
}
