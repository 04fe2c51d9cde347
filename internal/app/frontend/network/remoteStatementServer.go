package network

import (
	"context"
	"fmt"
	"runtime/debug"

	"quilldb/internal/app/plan"
)

type RemoteStatementServer struct {
	RemoteStatement
	rConn   *RemoteConnectionServer
	planner *plan.Planner
}

func NewRemoteStatementServer(c *RemoteConnectionServer, p *plan.Planner) (RemoteStatement, error) {
	return &RemoteStatementServer{
		rConn:   c,
		planner: p,
	}, nil
}

func (rss *RemoteStatementServer) ExecuteQuery(ctx context.Context, query string) (result RemoteResultSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch x := r.(type) {
			case string:
				err = fmt.Errorf("panic in ExecuteQuery: %s", x)
			case error:
				err = fmt.Errorf("panic in ExecuteQuery: %w", x)
			default:
				err = fmt.Errorf("panic in ExecuteQuery: %v", x)
			}

			debug.PrintStack()

			rss.rConn.Rollback()
			result = nil
		}
	}()

	t := rss.rConn.GetTransaction()
	p, err := rss.planner.CreateQueryPlan(query, t)
	if err != nil {
		rss.rConn.Rollback()
		return nil, err
	}
	return NewRemoteSetServer(p, rss.rConn)
}

func (rss *RemoteStatementServer) ExecuteUpdate(ctx context.Context, cmd string) (int, error) {
	t := rss.rConn.GetTransaction()

	result, err := rss.planner.ExecuteUpdate(cmd, t)
	if err != nil {
		rss.rConn.Rollback()
		return 0, err
	}

	if err := rss.rConn.Commit(); err != nil {
		return 0, err
	}

	return result, nil
}
