package query

import (
	"math"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// Term is a single "lhs = rhs" equality condition, each side either a
// field reference or a literal constant.
type Term struct {
	lhs *Expression
	rhs *Expression
}

func NewTerm(lhs *Expression, rhs *Expression) *Term {
	return &Term{lhs: lhs, rhs: rhs}
}

func (t *Term) LHS() *Expression { return t.lhs }
func (t *Term) RHS() *Expression { return t.rhs }

// IsSatisfied reports whether both sides evaluate equal against s's
// current record.
func (t *Term) IsSatisfied(s interfaces.Scan) (bool, error) {
	lhsVal, err := t.lhs.Evaluate(s)
	if err != nil {
		return false, err
	}
	rhsVal, err := t.rhs.Evaluate(s)
	if err != nil {
		return false, err
	}
	return lhsVal.Equals(rhsVal), nil
}

// AppliesTo reports whether both sides can be evaluated against schema.
func (t *Term) AppliesTo(schema *record.Schema) bool {
	return t.lhs.AppliesTo(schema) && t.rhs.AppliesTo(schema)
}

// ReductionFactor estimates how much this term narrows its plan's
// output: the distinct-value count of whichever side(s) are fields, 1
// for an equal-constants tautology, or math.MaxInt for an unsatisfiable
// constant comparison.
func (t *Term) ReductionFactor(p interfaces.Plan) int {
	if t.lhs.IsFieldName() && t.rhs.IsFieldName() {
		lhsName := t.lhs.AsFieldName()
		rhsName := t.rhs.AsFieldName()
		return max(p.DistinctValues(lhsName), p.DistinctValues(rhsName))
	}
	if t.lhs.IsFieldName() {
		return p.DistinctValues(t.lhs.AsFieldName())
	}
	if t.rhs.IsFieldName() {
		return p.DistinctValues(t.rhs.AsFieldName())
	}
	if t.lhs.AsConstant().Equals(t.rhs.AsConstant()) {
		return 1
	}
	return math.MaxInt
}

// EquatesWithConstant reports whether this term is "fldName = constant"
// (or the reverse), returning that constant if so.
func (t *Term) EquatesWithConstant(fldName string) (types.Constant, bool) {
	if t.lhs.IsFieldName() && t.lhs.AsFieldName() == fldName && !t.rhs.IsFieldName() {
		return t.rhs.AsConstant(), true
	}
	if t.rhs.IsFieldName() && t.rhs.AsFieldName() == fldName && !t.lhs.IsFieldName() {
		return t.lhs.AsConstant(), true
	}
	return types.Constant{}, false
}

// EquatesWithField reports whether this term is "fldName = otherField",
// returning the other field's name if so.
func (t *Term) EquatesWithField(fldName string) string {
	if t.lhs.IsFieldName() && t.lhs.AsFieldName() == fldName && t.rhs.IsFieldName() {
		return t.rhs.AsFieldName()
	}
	if t.rhs.IsFieldName() && t.rhs.AsFieldName() == fldName && t.lhs.IsFieldName() {
		return t.lhs.AsFieldName()
	}
	return ""
}

func (t *Term) String() string {
	return t.lhs.String() + "=" + t.rhs.String()
}
