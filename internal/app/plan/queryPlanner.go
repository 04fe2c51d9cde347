package plan

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/parse"
	"quilldb/internal/app/tx"
)

// QueryPlanner builds an executable Plan from a parsed SELECT
// statement.
type QueryPlanner interface {
	CreatePlan(data *parse.QueryData, t *tx.Transaction) (interfaces.Plan, error)
}
