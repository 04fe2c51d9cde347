package network

import "context"

// RemoteDriver is the network-side counterpart of the embedded driver:
// Connect takes only a context (no database name) and reports failure
// through its error result.
type RemoteDriver interface {
	Connect(ctx context.Context) (RemoteConnection, error)
}
