package optimization

import (
	"quilldb/internal/app/index/planner"
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/multibuffer"
	"quilldb/internal/app/plan"
	"quilldb/internal/app/query"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// TablePlanner evaluates the access paths available for a single table
// (full scan, index select, index join, product join) and builds
// whichever plan the heuristic picks.
type TablePlanner struct {
	myplan   *plan.TablePlan
	mypred   *query.Predicate
	myschema *record.Schema
	indexes  map[string]metadata.IndexInfo
	tx       *tx.Transaction
}

func NewTablePlanner(tableName string, mypred *query.Predicate, t *tx.Transaction, mdm *metadata.MetaDataManager) (*TablePlanner, error) {
	tablePlan, err := plan.NewTablePlan(t, tableName, mdm)
	if err != nil {
		return nil, err
	}
	tp, ok := tablePlan.(*plan.TablePlan)
	if !ok {
		return nil, err
	}

	indexes, err := mdm.GetIndexInfo(tableName, t)
	if err != nil {
		return nil, err
	}

	return &TablePlanner{
		myplan:   tp,
		mypred:   mypred,
		tx:       t,
		myschema: tp.Schema(),
		indexes:  indexes,
	}, nil
}

// MakeSelectPlan prefers an index select over scanning the whole table.
func (tp *TablePlanner) MakeSelectPlan() interfaces.Plan {
	p := tp.makeIndexSelect()
	if p == nil {
		p = tp.myplan
	}
	return tp.addSelectPred(p)
}

// MakeJoinPlan returns nil when no predicate joins current to this
// table.
func (tp *TablePlanner) MakeJoinPlan(current interfaces.Plan) interfaces.Plan {
	currsch := current.Schema()
	joinpred := tp.mypred.JoinSubPred(tp.myschema, currsch)
	if joinpred == nil {
		return nil
	}

	p := tp.makeIndexJoin(current, currsch)
	if p == nil {
		p = tp.makeProductJoin(current, currsch)
	}

	return p
}

// MakeProductPlan is the fallback when no join predicate applies.
func (tp *TablePlanner) MakeProductPlan(current interfaces.Plan) interfaces.Plan {
	p := tp.addSelectPred(tp.myplan)
	return multibuffer.NewMultiBufferProductPlan(tp.tx, current, p)
}

func (tp *TablePlanner) makeIndexSelect() interfaces.Plan {
	for fieldName := range tp.indexes {
		val, ok := tp.mypred.EquatesWithConstant(fieldName)
		if !ok {
			continue
		}
		ii := tp.indexes[fieldName]
		return planner.NewIndexSelectPlan(tp.myplan, &ii, val)
	}
	return nil
}

func (tp *TablePlanner) makeIndexJoin(current interfaces.Plan, currsch *record.Schema) interfaces.Plan {
	for fieldName := range tp.indexes {
		outerField := tp.mypred.EquatesWithField(fieldName)
		if outerField != "" && currsch.HasField(outerField) {
			ii := tp.indexes[fieldName]
			p := planner.NewIndexJoinPlan(current, tp.myplan, &ii, outerField)
			joined := tp.addSelectPred(p)
			return tp.addJoinPred(joined, currsch)
		}
	}
	return nil
}

func (tp *TablePlanner) makeProductJoin(current interfaces.Plan, currsch *record.Schema) interfaces.Plan {
	p := tp.MakeProductPlan(current)
	return tp.addJoinPred(p, currsch)
}

func (tp *TablePlanner) addSelectPred(p interfaces.Plan) interfaces.Plan {
	selectPred := tp.mypred.SelectSubPred(tp.myschema)
	if selectPred != nil {
		return plan.NewSelectPlan(p, selectPred)
	}
	return p
}

func (tp *TablePlanner) addJoinPred(p interfaces.Plan, currsch *record.Schema) interfaces.Plan {
	joinpred := tp.mypred.JoinSubPred(currsch, tp.myschema)
	if joinpred != nil {
		return plan.NewSelectPlan(p, joinpred)
	}
	return p
}
