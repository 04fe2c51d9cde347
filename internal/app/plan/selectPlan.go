package plan

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/query"
	"quilldb/internal/app/record"
)

// SelectPlan wraps another plan and filters its output through a
// predicate.
type SelectPlan struct {
	p    interfaces.Plan
	pred *query.Predicate
}

func NewSelectPlan(p interfaces.Plan, pred *query.Predicate) *SelectPlan {
	return &SelectPlan{
		p:    p,
		pred: pred,
	}
}

func (sp *SelectPlan) Open() (interfaces.Scan, error) {
	s, err := sp.p.Open()
	if err != nil {
		return nil, err
	}
	return query.NewSelectScan(s, sp.pred)
}

// BlocksAccessed is unchanged from the underlying plan: every block
// still has to be read to evaluate the predicate.
func (sp *SelectPlan) BlocksAccessed() int {
	return sp.p.BlocksAccessed()
}

func (sp *SelectPlan) RecordsOutput() int {
	return sp.p.RecordsOutput() / sp.pred.ReductionFactor(sp.p)
}

// DistinctValues returns 1 if fieldName is pinned to a constant by the
// predicate, the lesser of both fields' counts if it's equated with
// another field, else defers to the underlying plan.
func (sp *SelectPlan) DistinctValues(fieldName string) int {
	if _, ok := sp.pred.EquatesWithConstant(fieldName); ok {
		return 1
	}
	fieldName2 := sp.pred.EquatesWithField(fieldName)
	if fieldName2 != "" {
		return min(sp.p.DistinctValues(fieldName), sp.p.DistinctValues(fieldName2))
	}
	return sp.p.DistinctValues(fieldName)
}

func (sp *SelectPlan) Schema() *record.Schema {
	return sp.p.Schema()
}
