package optimization

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/parse"
	"quilldb/internal/app/plan"
	"quilldb/internal/app/tx"
)

// HeuristicQueryPlanner builds a left-deep join tree using two greedy
// heuristics: start with the table whose selection yields the fewest
// records, then repeatedly add whichever remaining table produces the
// smallest join (falling back to a product when no join predicate
// applies).
type HeuristicQueryPlanner struct {
	tablePlanners []*TablePlanner
	mdm           *metadata.MetaDataManager
}

func NewHeuristicQueryPlanner(mdm *metadata.MetaDataManager) *HeuristicQueryPlanner {
	return &HeuristicQueryPlanner{
		tablePlanners: make([]*TablePlanner, 0),
		mdm:           mdm,
	}
}

func (h *HeuristicQueryPlanner) CreatePlan(data *parse.QueryData, t *tx.Transaction) (interfaces.Plan, error) {
	h.tablePlanners = make([]*TablePlanner, 0)

	for _, tableName := range data.Tables() {
		tp, err := NewTablePlanner(tableName, data.Pred(), t, h.mdm)
		if err != nil {
			return nil, err
		}
		h.tablePlanners = append(h.tablePlanners, tp)
	}

	currentPlan := h.getLowestSelectPlan()

	for len(h.tablePlanners) > 0 {
		p := h.getLowestJoinPlan(currentPlan)
		if p != nil {
			currentPlan = p
		} else {
			currentPlan = h.getLowestProductPlan(currentPlan)
		}
	}

	return plan.NewProjectPlan(currentPlan, data.Fields()), nil
}

func (h *HeuristicQueryPlanner) getLowestSelectPlan() interfaces.Plan {
	var bestTP *TablePlanner
	var bestPlan interfaces.Plan

	for _, tp := range h.tablePlanners {
		candidatePlan := tp.MakeSelectPlan()
		if bestPlan == nil || candidatePlan.RecordsOutput() < bestPlan.RecordsOutput() {
			bestTP = tp
			bestPlan = candidatePlan
		}
	}

	h.removeTablePlanner(bestTP)
	return bestPlan
}

func (h *HeuristicQueryPlanner) getLowestJoinPlan(current interfaces.Plan) interfaces.Plan {
	var bestTP *TablePlanner
	var bestPlan interfaces.Plan

	for _, tp := range h.tablePlanners {
		joinPlan := tp.MakeJoinPlan(current)
		if joinPlan != nil && (bestPlan == nil || joinPlan.RecordsOutput() < bestPlan.RecordsOutput()) {
			bestTP = tp
			bestPlan = joinPlan
		}
	}

	if bestPlan != nil {
		h.removeTablePlanner(bestTP)
	}
	return bestPlan
}

func (h *HeuristicQueryPlanner) getLowestProductPlan(current interfaces.Plan) interfaces.Plan {
	var bestTP *TablePlanner
	var bestPlan interfaces.Plan

	for _, tp := range h.tablePlanners {
		productPlan := tp.MakeProductPlan(current)
		if bestPlan == nil || productPlan.RecordsOutput() < bestPlan.RecordsOutput() {
			bestTP = tp
			bestPlan = productPlan
		}
	}

	h.removeTablePlanner(bestTP)
	return bestPlan
}

func (h *HeuristicQueryPlanner) removeTablePlanner(tp *TablePlanner) {
	for i, planner := range h.tablePlanners {
		if planner == tp {
			h.tablePlanners = append(h.tablePlanners[:i], h.tablePlanners[i+1:]...)
			break
		}
	}
}
