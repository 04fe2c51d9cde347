package plan

import (
	"fmt"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/parse"
	"quilldb/internal/app/tx"
)

// BasicQueryPlanner builds a plan straight off the parsed query, with
// no cost-based reordering: tables (and views, expanded recursively)
// joined left to right, then filtered and projected.
type BasicQueryPlanner struct {
	mdm *metadata.MetaDataManager
}

func NewBasicQueryPlanner(mdm *metadata.MetaDataManager) *BasicQueryPlanner {
	return &BasicQueryPlanner{
		mdm: mdm,
	}
}

func (bqp *BasicQueryPlanner) CreatePlan(data *parse.QueryData, t *tx.Transaction) (interfaces.Plan, error) {
	var plans []interfaces.Plan

	for _, tableName := range data.Tables() {
		viewDef, err := bqp.mdm.GetViewDef(tableName, t)
		if err != nil {
			return nil, err
		}

		if viewDef != "" {
			parser := parse.NewParser(viewDef)
			viewData := parser.Query()
			viewPlan, err := bqp.CreatePlan(viewData, t)
			if err != nil {
				return nil, err
			}
			plans = append(plans, viewPlan)
		} else {
			tp, err := NewTablePlan(t, tableName, bqp.mdm)
			if err != nil {
				return nil, err
			}
			plans = append(plans, tp)
		}
	}

	if len(plans) == 0 {
		return nil, fmt.Errorf("query names no tables or views")
	}

	p := plans[0]
	for i := 1; i < len(plans); i++ {
		p = NewProductPlan(p, plans[i])
	}

	p = NewSelectPlan(p, data.Pred())

	return NewProjectPlan(p, data.Fields()), nil
}
