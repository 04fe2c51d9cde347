package network

import "context"

// RemoteMetaData is the network-side counterpart of EmbeddedMetaData,
// exposed over RPC instead of direct method calls.
type RemoteMetaData interface {
	GetColumnCount(ctx context.Context) (int, error)
	GetColumnName(ctx context.Context, column int) (string, error)
	GetColumnType(ctx context.Context, column int) (int, error)
	GetColumnDisplaySize(ctx context.Context, column int) (int, error)
}
