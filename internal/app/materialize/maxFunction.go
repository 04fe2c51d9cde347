package materialize

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/types"
)

// MaxFunction tracks the maximum value seen for a field across a
// group.
type MaxFunction struct {
	fieldName string
	val       types.Constant
}

func NewMaxFn(fieldName string) *MaxFunction {
	return &MaxFunction{
		fieldName: fieldName,
	}
}

func (m *MaxFunction) ProcessFirst(s interfaces.Scan) error {
	val, err := s.GetVal(m.fieldName)
	if err != nil {
		return err
	}
	m.val = val
	return nil
}

func (m *MaxFunction) ProcessNext(s interfaces.Scan) error {
	newVal, err := s.GetVal(m.fieldName)
	if err != nil {
		return err
	}
	if newVal.CompareTo(m.val) > 0 {
		m.val = newVal
	}
	return nil
}

func (m *MaxFunction) FieldName() string {
	return "maxof" + m.fieldName
}

func (m *MaxFunction) value() types.Constant {
	return m.val
}
