package planner

import (
	"fmt"

	"quilldb/internal/app/index/query"
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/record"
)

// IndexJoinPlan joins p1 to p2 through an index on p2's joinField,
// avoiding a full scan of p2 per p1 record.
type IndexJoinPlan struct {
	p1        interfaces.Plan
	p2        interfaces.Plan
	ii        *metadata.IndexInfo
	joinField string
	schema    *record.Schema
}

func NewIndexJoinPlan(p1 interfaces.Plan, p2 interfaces.Plan, ii *metadata.IndexInfo, joinField string) *IndexJoinPlan {
	sch := record.NewSchema()
	sch.AddAll(p1.Schema())
	sch.AddAll(p2.Schema())

	return &IndexJoinPlan{
		p1:        p1,
		p2:        p2,
		ii:        ii,
		joinField: joinField,
		schema:    sch,
	}
}

// Open requires p2 to be a TablePlan (its Open() must yield a
// *record.TableScan, since the index stores RIDs into that table).
func (ijp *IndexJoinPlan) Open() (interfaces.Scan, error) {
	s, err := ijp.p1.Open()
	if err != nil {
		return nil, err
	}
	scan2, err := ijp.p2.Open()
	if err != nil {
		return nil, err
	}
	ts, ok := scan2.(*record.TableScan)
	if !ok {
		return nil, fmt.Errorf("index join requires the right-hand plan to open a TableScan")
	}

	idx := ijp.ii.Open()
	return query.NewIndexJoinScan(s, idx, ijp.joinField, ts)
}

// BlocksAccessed is B(p1) + R(p1)*B(idx) + R(indexjoin).
func (ijp *IndexJoinPlan) BlocksAccessed() int {
	return ijp.p1.BlocksAccessed() + (ijp.p1.RecordsOutput() * ijp.ii.BlocksAccessed()) + ijp.RecordsOutput()
}

// RecordsOutput is R(p1)*R(idx).
func (ijp *IndexJoinPlan) RecordsOutput() int {
	return ijp.p1.RecordsOutput() * ijp.ii.RecordsOutput()
}

func (ijp *IndexJoinPlan) DistinctValues(fldName string) int {
	if ijp.p1.Schema().HasField(fldName) {
		return ijp.p1.DistinctValues(fldName)
	}
	return ijp.p2.DistinctValues(fldName)
}

func (ijp *IndexJoinPlan) Schema() *record.Schema {
	return ijp.schema
}
