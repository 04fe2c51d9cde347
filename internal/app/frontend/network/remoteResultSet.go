package network

import "context"

// RemoteResultSet is the network-side counterpart of EmbeddedResultSet:
// each method takes a context and reports failure through its error
// result.
type RemoteResultSet interface {
	Next(ctx context.Context) (bool, error)
	GetInt(ctx context.Context, fldName string) (int, error)
	GetString(ctx context.Context, fldName string) (string, error)
	GetMetaData(ctx context.Context) (RemoteMetaData, error)
	Close(ctx context.Context) error
}
