package multibuffer

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/materialize"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// MultibufferProductPlan is the product operator's multi-buffer
// version: it materializes the left side, then scans the right side in
// buffer-sized chunks instead of once per left record.
type MultibufferProductPlan struct {
	tx     *tx.Transaction
	lhs    interfaces.Plan
	rhs    interfaces.Plan
	schema *record.Schema
}

func NewMultiBufferProductPlan(t *tx.Transaction, lhs, rhs interfaces.Plan) *MultibufferProductPlan {
	sch := record.NewSchema()
	sch.AddAll(lhs.Schema())
	sch.AddAll(rhs.Schema())

	materializedLHS := materialize.NewMaterializePlan(t, lhs)

	return &MultibufferProductPlan{
		tx:     t,
		lhs:    materializedLHS,
		rhs:    rhs,
		schema: sch,
	}
}

// Open materializes the right side into a temp table, then creates a
// MultibufferProductScan that chunks over it.
func (p *MultibufferProductPlan) Open() (interfaces.Scan, error) {
	leftScan, err := p.lhs.Open()
	if err != nil {
		return nil, err
	}
	tempTable, err := p.copyRecordsFrom(p.rhs)
	if err != nil {
		return nil, err
	}
	return NewMultiBufferProductScan(p.tx, leftScan, tempTable.TableName(), tempTable.GetLayout())
}

// BlocksAccessed is B(p2) + B(p1)*C(p2), C(p2) being the chunk count.
func (p *MultibufferProductPlan) BlocksAccessed() int {
	avail := p.tx.AvailableBuffs()
	size := materialize.NewMaterializePlan(p.tx, p.rhs).BlocksAccessed()
	numChunks := size / avail
	if size%avail > 0 {
		numChunks++
	}

	return p.rhs.BlocksAccessed() + (p.lhs.BlocksAccessed() * numChunks)
}

func (p *MultibufferProductPlan) RecordsOutput() int {
	return p.lhs.RecordsOutput() * p.rhs.RecordsOutput()
}

func (p *MultibufferProductPlan) DistinctValues(fieldName string) int {
	if p.lhs.Schema().HasField(fieldName) {
		return p.lhs.DistinctValues(fieldName)
	}
	return p.rhs.DistinctValues(fieldName)
}

func (p *MultibufferProductPlan) Schema() *record.Schema {
	return p.schema
}

func (p *MultibufferProductPlan) copyRecordsFrom(sourcePlan interfaces.Plan) (*materialize.TempTable, error) {
	src, err := sourcePlan.Open()
	if err != nil {
		return nil, err
	}
	sch := sourcePlan.Schema()
	tempTable := materialize.NewTempTable(p.tx, sch)

	dest, err := tempTable.Open()
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

	src.Close()
	dest.Close()

	return tempTable, nil
}
