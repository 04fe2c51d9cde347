package materialize

import (
	"fmt"
	"math"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// MergeJoinPlan joins two plans, sorted on their respective join
// fields, without the repeated re-scanning a product join needs.
type MergeJoinPlan struct {
	p1       interfaces.Plan
	p2       interfaces.Plan
	fldName1 string
	fldName2 string
	sch      *record.Schema
}

func NewMergeJoinPlan(t *tx.Transaction, p1 interfaces.Plan, p2 interfaces.Plan, fldName1 string, fldName2 string) *MergeJoinPlan {
	sortedP1 := newSortPlan(t, p1, []string{fldName1})
	sortedP2 := newSortPlan(t, p2, []string{fldName2})

	sch := record.NewSchema()
	sch.AddAll(p1.Schema())
	sch.AddAll(p2.Schema())

	return &MergeJoinPlan{
		p1:       sortedP1,
		p2:       sortedP2,
		fldName1: fldName1,
		fldName2: fldName2,
		sch:      sch,
	}
}

func (m *MergeJoinPlan) Open() (interfaces.Scan, error) {
	s1, err := m.p1.Open()
	if err != nil {
		return nil, err
	}
	scan2, err := m.p2.Open()
	if err != nil {
		return nil, err
	}
	s2, ok := scan2.(*SortScan)
	if !ok {
		return nil, fmt.Errorf("merge join requires a sorted scan on its right-hand side")
	}

	return NewMergeJoinScan(s1, s2, m.fldName1, m.fldName2)
}

func (m *MergeJoinPlan) BlocksAccessed() int {
	return m.p1.BlocksAccessed() + m.p2.BlocksAccessed()
}

func (m *MergeJoinPlan) RecordsOutput() int {
	maxvals := math.Max(
		float64(m.p1.DistinctValues(m.fldName1)),
		float64(m.p2.DistinctValues(m.fldName2)),
	)
	return int(float64(m.p1.RecordsOutput()*m.p2.RecordsOutput()) / maxvals)
}

func (m *MergeJoinPlan) DistinctValues(fldname string) int {
	if m.p1.Schema().HasField(fldname) {
		return m.p1.DistinctValues(fldname)
	}
	return m.p2.DistinctValues(fldname)
}

func (m *MergeJoinPlan) Schema() *record.Schema {
	return m.sch
}
