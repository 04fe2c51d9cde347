package materialize

import (
	"fmt"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/types"
)

// GroupByScan groups the records of a (pre-sorted) underlying scan by
// groupFields and exposes one output record per group, with aggFns
// computed over that group's records.
type GroupByScan struct {
	s           interfaces.Scan
	groupFields []string
	aggFns      []AggregateFunction
	groupVal    *GroupValue
	moreGroups  bool
}

func NewGroupByScan(s interfaces.Scan, groupFields []string, aggFns []AggregateFunction) (*GroupByScan, error) {
	gbs := &GroupByScan{
		s:           s,
		groupFields: groupFields,
		aggFns:      aggFns,
	}

	if err := gbs.BeforeFirst(); err != nil {
		return nil, err
	}
	return gbs, nil
}

// BeforeFirst positions the underlying scan at its first record: the
// group is always identified by the record the underlying scan is
// currently sitting on.
func (gbs *GroupByScan) BeforeFirst() error {
	if err := gbs.s.BeforeFirst(); err != nil {
		return err
	}
	more, err := gbs.s.Next()
	if err != nil {
		return err
	}
	gbs.moreGroups = more
	return nil
}

func (gbs *GroupByScan) Next() (bool, error) {
	if !gbs.moreGroups {
		return false, nil
	}

	for _, fn := range gbs.aggFns {
		if err := fn.ProcessFirst(gbs.s); err != nil {
			return false, err
		}
	}

	groupVal, err := NewGroupValue(gbs.s, gbs.groupFields)
	if err != nil {
		return false, err
	}
	gbs.groupVal = groupVal

	for {
		more, err := gbs.s.Next()
		if err != nil {
			return false, err
		}
		gbs.moreGroups = more
		if !more {
			break
		}

		nextGroupVal, err := NewGroupValue(gbs.s, gbs.groupFields)
		if err != nil {
			return false, err
		}
		if !gbs.groupVal.Equals(nextGroupVal) {
			break
		}

		for _, fn := range gbs.aggFns {
			if err := fn.ProcessNext(gbs.s); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

func (gbs *GroupByScan) Close() error {
	return gbs.s.Close()
}

func (gbs *GroupByScan) GetVal(fieldName string) (types.Constant, error) {
	for _, field := range gbs.groupFields {
		if field == fieldName {
			return gbs.groupVal.GetVal(fieldName), nil
		}
	}

	for _, fn := range gbs.aggFns {
		if fn.FieldName() == fieldName {
			return fn.value(), nil
		}
	}

	return types.Constant{}, fmt.Errorf("field %s not found", fieldName)
}

func (gbs *GroupByScan) GetInt(fieldName string) (int, error) {
	val, err := gbs.GetVal(fieldName)
	if err != nil {
		return 0, err
	}
	i := val.AsInt()
	if i == nil {
		return 0, fmt.Errorf("field %s is not an integer", fieldName)
	}
	return *i, nil
}

func (gbs *GroupByScan) GetString(fieldName string) (string, error) {
	val, err := gbs.GetVal(fieldName)
	if err != nil {
		return "", err
	}
	s := val.AsString()
	if s == nil {
		return "", fmt.Errorf("field %s is not a string", fieldName)
	}
	return *s, nil
}

func (gbs *GroupByScan) HasField(fieldName string) bool {
	for _, field := range gbs.groupFields {
		if field == fieldName {
			return true
		}
	}

	for _, fn := range gbs.aggFns {
		if fn.FieldName() == fieldName {
			return true
		}
	}

	return false
}
