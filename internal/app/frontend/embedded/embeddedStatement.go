package embedded

import "quilldb/internal/app/plan"

// EmbeddedStatement runs one SQL statement against its connection's
// current transaction.
type EmbeddedStatement struct {
	conn    *EmbeddedConnection
	planner *plan.Planner
}

func NewEmbeddedStatement(conn *EmbeddedConnection, planner *plan.Planner) *EmbeddedStatement {
	return &EmbeddedStatement{
		conn:    conn,
		planner: planner,
	}
}

func (es *EmbeddedStatement) ExecuteQuery(query string) (*EmbeddedResultSet, error) {
	t := es.conn.getTransaction()
	p, err := es.planner.CreateQueryPlan(query, t)
	if err != nil {
		return nil, err
	}
	return NewEmbeddedResultSet(p, es.conn)
}

func (es *EmbeddedStatement) ExecuteUpdate(cmd string) (int, error) {
	t := es.conn.getTransaction()

	result, err := es.planner.ExecuteUpdate(cmd, t)
	if err != nil {
		return 0, err
	}

	if err := es.conn.commit(); err != nil {
		return 0, err
	}

	return result, nil
}

func (es *EmbeddedStatement) Close() error {
	return nil
}
