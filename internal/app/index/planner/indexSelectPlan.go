package planner

import (
	"fmt"

	"quilldb/internal/app/index/query"
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// IndexSelectPlan selects records matching val by walking an index
// rather than scanning the whole underlying table.
type IndexSelectPlan struct {
	p   interfaces.Plan
	ii  *metadata.IndexInfo
	val types.Constant
}

func NewIndexSelectPlan(p interfaces.Plan, ii *metadata.IndexInfo, val types.Constant) *IndexSelectPlan {
	return &IndexSelectPlan{
		p:   p,
		ii:  ii,
		val: val,
	}
}

// Open requires the underlying plan to be a TablePlan (its Open() must
// yield a *record.TableScan, since the index stores RIDs into that
// table).
func (isp *IndexSelectPlan) Open() (interfaces.Scan, error) {
	scan, err := isp.p.Open()
	if err != nil {
		return nil, err
	}
	ts, ok := scan.(*record.TableScan)
	if !ok {
		return nil, fmt.Errorf("index select requires a TableScan as input")
	}

	idx := isp.ii.Open()
	return query.NewIndexSelectScan(ts, idx, isp.val)
}

// BlocksAccessed is the index traversal cost plus the matching data
// records.
func (isp *IndexSelectPlan) BlocksAccessed() int {
	return isp.ii.BlocksAccessed() + isp.RecordsOutput()
}

func (isp *IndexSelectPlan) RecordsOutput() int {
	return isp.ii.RecordsOutput()
}

func (isp *IndexSelectPlan) DistinctValues(fldName string) int {
	return isp.ii.DistinctValues(fldName)
}

func (isp *IndexSelectPlan) Schema() *record.Schema {
	return isp.p.Schema()
}
