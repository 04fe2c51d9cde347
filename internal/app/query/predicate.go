package query

import (
	"strings"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// Predicate is a conjunction (AND) of Terms; an empty predicate is
// always satisfied.
type Predicate struct {
	terms []*Term
}

func NewPredicate() *Predicate {
	return &Predicate{terms: make([]*Term, 0)}
}

func NewPredicateWithTerm(t *Term) *Predicate {
	return &Predicate{terms: []*Term{t}}
}

// Terms returns the predicate's conjuncts.
func (p *Predicate) Terms() []*Term {
	return p.terms
}

// ConjoinWith ANDs pred's terms into this predicate.
func (p *Predicate) ConjoinWith(pred *Predicate) {
	p.terms = append(p.terms, pred.terms...)
}

// IsSatisfied reports whether every term holds against s's current
// record.
func (p *Predicate) IsSatisfied(s interfaces.Scan) (bool, error) {
	for _, t := range p.terms {
		ok, err := t.IsSatisfied(s)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ReductionFactor is the product of each term's individual reduction
// factor.
func (p *Predicate) ReductionFactor(plan interfaces.Plan) int {
	factor := 1
	for _, t := range p.terms {
		factor *= t.ReductionFactor(plan)
	}
	return factor
}

// SelectSubPred returns the sub-predicate of terms that can be fully
// evaluated against schema, or nil if none can.
func (p *Predicate) SelectSubPred(schema *record.Schema) *Predicate {
	result := NewPredicate()
	for _, t := range p.terms {
		if t.AppliesTo(schema) {
			result.terms = append(result.terms, t)
		}
	}
	if len(result.terms) == 0 {
		return nil
	}
	return result
}

// JoinSubPred returns the sub-predicate of terms that need both
// schema1 and schema2 to evaluate (true join conditions), or nil.
func (p *Predicate) JoinSubPred(schema1, schema2 *record.Schema) *Predicate {
	result := NewPredicate()
	newSchema := record.NewSchema()
	newSchema.AddAll(schema1)
	newSchema.AddAll(schema2)

	for _, t := range p.terms {
		if !t.AppliesTo(schema1) && !t.AppliesTo(schema2) && t.AppliesTo(newSchema) {
			result.terms = append(result.terms, t)
		}
	}
	if len(result.terms) == 0 {
		return nil
	}
	return result
}

// EquatesWithConstant looks for a term "fldName = constant".
func (p *Predicate) EquatesWithConstant(fldName string) (types.Constant, bool) {
	for _, t := range p.terms {
		if c, ok := t.EquatesWithConstant(fldName); ok {
			return c, true
		}
	}
	return types.Constant{}, false
}

// EquatesWithField looks for a term "fldName = otherField".
func (p *Predicate) EquatesWithField(fldName string) string {
	for _, t := range p.terms {
		if s := t.EquatesWithField(fldName); s != "" {
			return s
		}
	}
	return ""
}

func (p *Predicate) String() string {
	if len(p.terms) == 0 {
		return ""
	}
	var result strings.Builder
	result.WriteString(p.terms[0].String())
	for i := 1; i < len(p.terms); i++ {
		result.WriteString(" AND ")
		result.WriteString(p.terms[i].String())
	}
	return result.String()
}
