package network

import "context"

// RemoteConnection is the network-side counterpart of EmbeddedConnection:
// each method takes a context and reports failure through its error
// result.
type RemoteConnection interface {
	CreateStatement(ctx context.Context) (RemoteStatement, error)
	Close(ctx context.Context) error
}
