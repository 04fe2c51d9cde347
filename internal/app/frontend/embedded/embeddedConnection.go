package embedded

import (
	"quilldb/internal/app/plan"
	"quilldb/internal/app/server"
	"quilldb/internal/app/tx"
)

// EmbeddedConnection is a connection to an in-process engine: it owns
// the current transaction and hands out statements against it.
type EmbeddedConnection struct {
	db        *server.Engine
	currentTx *tx.Transaction
	planner   *plan.Planner
}

func NewEmbeddedConnection(db *server.Engine) (*EmbeddedConnection, error) {
	t, err := db.NewTx()
	if err != nil {
		return nil, err
	}

	return &EmbeddedConnection{
		db:        db,
		currentTx: t,
		planner:   db.Planner(),
	}, nil
}

// Close commits any pending changes before the connection goes away.
func (ec *EmbeddedConnection) Close() error {
	return ec.commit()
}

func (ec *EmbeddedConnection) commit() error {
	if err := ec.currentTx.Commit(); err != nil {
		return err
	}
	t, err := ec.db.NewTx()
	if err != nil {
		return err
	}
	ec.currentTx = t
	return nil
}

func (ec *EmbeddedConnection) rollback() error {
	if err := ec.currentTx.Rollback(); err != nil {
		return err
	}
	t, err := ec.db.NewTx()
	if err != nil {
		return err
	}
	ec.currentTx = t
	return nil
}

func (ec *EmbeddedConnection) getTransaction() *tx.Transaction {
	return ec.currentTx
}
