package network

import "context"

// RemoteStatement is the network-side counterpart of EmbeddedStatement:
// each method takes a context and reports failure through its error
// result.
type RemoteStatement interface {
	ExecuteQuery(ctx context.Context, query string) (RemoteResultSet, error)
	ExecuteUpdate(ctx context.Context, cmd string) (int, error)
}
