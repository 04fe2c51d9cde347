package network

import (
	"context"

	"quilldb/internal/app/plan"
	"quilldb/internal/app/server"
	"quilldb/internal/app/tx"
)

type RemoteConnectionServer struct {
	RemoteConnection
	db        *server.Engine
	currentTx *tx.Transaction
	planner   *plan.Planner
}

func NewRemoteConnectionServer(db *server.Engine) (RemoteConnection, error) {
	t, err := db.NewTx()
	if err != nil {
		return nil, err
	}

	return &RemoteConnectionServer{
		db:        db,
		currentTx: t,
		planner:   db.Planner(),
	}, nil
}

func (c *RemoteConnectionServer) CreateStatement(ctx context.Context) (RemoteStatement, error) {
	return NewRemoteStatementServer(c, c.planner)
}

func (c *RemoteConnectionServer) Close(ctx context.Context) error {
	return c.currentTx.Commit()
}

func (c *RemoteConnectionServer) GetTransaction() *tx.Transaction {
	return c.currentTx
}

func (c *RemoteConnectionServer) Commit() error {
	if err := c.currentTx.Commit(); err != nil {
		return err
	}
	t, err := c.db.NewTx()
	if err != nil {
		return err
	}
	c.currentTx = t
	return nil
}

func (c *RemoteConnectionServer) Rollback() error {
	if err := c.currentTx.Rollback(); err != nil {
		return err
	}
	t, err := c.db.NewTx()
	if err != nil {
		return err
	}
	c.currentTx = t
	return nil
}
