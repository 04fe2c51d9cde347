package materialize

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/types"
)

// GroupValue holds the values of the grouping fields for one record,
// used as the key identifying which group that record belongs to.
type GroupValue struct {
	vals map[string]types.Constant
}

func NewGroupValue(s interfaces.Scan, fields []string) (*GroupValue, error) {
	vals := make(map[string]types.Constant)

	for _, fieldName := range fields {
		val, err := s.GetVal(fieldName)
		if err != nil {
			return nil, err
		}
		vals[fieldName] = val
	}

	return &GroupValue{vals: vals}, nil
}

func (gv *GroupValue) GetVal(fieldName string) types.Constant {
	return gv.vals[fieldName]
}

func (gv *GroupValue) Equals(other *GroupValue) bool {
	for fieldName, v1 := range gv.vals {
		v2, exists := other.vals[fieldName]
		if !exists || !v1.Equals(v2) {
			return false
		}
	}
	return true
}

func (gv *GroupValue) HashCode() uint64 {
	var hashVal uint64
	for _, c := range gv.vals {
		hashVal += c.HashCode()
	}
	return hashVal
}
