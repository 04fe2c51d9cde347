package query

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// Expression is either a literal Constant or a field name, resolved
// against a scan's current record by Evaluate.
type Expression struct {
	val     types.Constant
	hasVal  bool
	fldName string
}

func NewExpressionVal(val types.Constant) *Expression {
	return &Expression{val: val, hasVal: true}
}

func NewExpressionFieldName(fieldName string) *Expression {
	return &Expression{fldName: fieldName}
}

func (e *Expression) IsFieldName() bool { return !e.hasVal }

func (e *Expression) AsConstant() types.Constant { return e.val }

func (e *Expression) AsFieldName() string { return e.fldName }

// Evaluate returns the expression's literal value, or looks up its
// field name in s's current record.
func (e *Expression) Evaluate(s interfaces.Scan) (types.Constant, error) {
	if e.hasVal {
		return e.val, nil
	}
	return s.GetVal(e.fldName)
}

// AppliesTo reports whether every field this expression references (if
// any) is present in schema. A literal always applies.
func (e *Expression) AppliesTo(schema *record.Schema) bool {
	if e.hasVal {
		return true
	}
	return schema.HasField(e.fldName)
}

func (e *Expression) String() string {
	if e.hasVal {
		return e.val.String()
	}
	return e.fldName
}
