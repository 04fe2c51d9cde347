package embedded

import (
	"fmt"

	"quilldb/internal/app/frontend"
	"quilldb/internal/app/server"
)

// EmbeddedDriver adapts frontend.DriverAdapter for an in-process
// engine: statements run directly against the engine, no RPC involved.
type EmbeddedDriver struct {
	frontend.DriverAdapter
}

// Connect opens (or creates) the database at dbName and wraps it in an
// EmbeddedConnection.
func Connect(dbName string, properties map[string]string) (*EmbeddedConnection, error) {
	db, err := server.NewEngine(dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return NewEmbeddedConnection(db)
}
