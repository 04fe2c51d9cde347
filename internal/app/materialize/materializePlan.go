package materialize

import (
	"math"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// MaterializePlan copies its source plan's output into a temp table so
// that downstream operators (sort, group-by) can scan it repeatedly
// without re-evaluating the source.
type MaterializePlan struct {
	srcPlan interfaces.Plan
	tx      *tx.Transaction
}

func NewMaterializePlan(t *tx.Transaction, srcPlan interfaces.Plan) *MaterializePlan {
	return &MaterializePlan{
		srcPlan: srcPlan,
		tx:      t,
	}
}

func (mp *MaterializePlan) Open() (interfaces.Scan, error) {
	sch := mp.srcPlan.Schema()

	temp := NewTempTable(mp.tx, sch)
	src, err := mp.srcPlan.Open()
	if err != nil {
		return nil, err
	}
	dest, err := temp.Open()
	if err != nil {
		src.Close()
		return nil, err
	}

	for {
		ok, err := src.Next()
		if err != nil {
			src.Close()
			dest.Close()
			return nil, err
		}
		if !ok {
			break
		}
		if err := dest.Insert(); err != nil {
			src.Close()
			dest.Close()
			return nil, err
		}
		for _, fieldName := range sch.Fields() {
			val, err := src.GetVal(fieldName)
			if err != nil {
				src.Close()
				dest.Close()
				return nil, err
			}
			if err := dest.SetVal(fieldName, val); err != nil {
				src.Close()
				dest.Close()
				return nil, err
			}
		}
	}

	if err := src.Close(); err != nil {
		return nil, err
	}
	if err := dest.BeforeFirst(); err != nil {
		return nil, err
	}

	return dest, nil
}

func (mp *MaterializePlan) BlocksAccessed() int {
	layout := record.NewLayout(mp.srcPlan.Schema())
	rpb := float64(mp.tx.BlockSize()) / float64(layout.SlotSize())

	return int(math.Ceil(float64(mp.srcPlan.RecordsOutput()) / rpb))
}

func (mp *MaterializePlan) RecordsOutput() int {
	return mp.srcPlan.RecordsOutput()
}

func (mp *MaterializePlan) DistinctValues(fieldName string) int {
	return mp.srcPlan.DistinctValues(fieldName)
}

func (mp *MaterializePlan) Schema() *record.Schema {
	return mp.srcPlan.Schema()
}
