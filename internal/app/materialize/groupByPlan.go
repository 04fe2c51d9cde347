package materialize

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// GroupByPlan sorts its source on groupFields and exposes one row per
// group, extended with the computed aggFns.
type GroupByPlan struct {
	p           interfaces.Plan
	groupFields []string
	aggFns      []AggregateFunction
	sch         *record.Schema
}

func NewGroupPlan(t *tx.Transaction, p interfaces.Plan, groupFields []string, aggFns []AggregateFunction) *GroupByPlan {
	sortedPlan := newSortPlan(t, p, groupFields)
	sch := record.NewSchema()

	for _, fieldName := range groupFields {
		sch.Add(fieldName, p.Schema())
	}
	for _, fn := range aggFns {
		sch.AddIntField(fn.FieldName())
	}

	return &GroupByPlan{
		p:           sortedPlan,
		groupFields: groupFields,
		aggFns:      aggFns,
		sch:         sch,
	}
}

func (g *GroupByPlan) Open() (interfaces.Scan, error) {
	s, err := g.p.Open()
	if err != nil {
		return nil, err
	}
	return NewGroupByScan(s, g.groupFields, g.aggFns)
}

func (g *GroupByPlan) BlocksAccessed() int {
	return g.p.BlocksAccessed()
}

// RecordsOutput assumes an even distribution across groups: the
// product of each grouping field's distinct-value count.
func (g *GroupByPlan) RecordsOutput() int {
	numGroups := 1
	for _, fieldName := range g.groupFields {
		numGroups *= g.p.DistinctValues(fieldName)
	}
	return numGroups
}

func (g *GroupByPlan) DistinctValues(fieldName string) int {
	if g.p.Schema().HasField(fieldName) {
		return g.p.DistinctValues(fieldName)
	}
	return g.RecordsOutput()
}

func (g *GroupByPlan) Schema() *record.Schema {
	return g.sch
}
