package network

import (
	"context"

	"quilldb/internal/app/server"
)

type DriverServer struct {
	RemoteDriver
	db *server.Engine
}

func NewDriverServer(db *server.Engine) (*DriverServer, error) {
	return &DriverServer{db: db}, nil
}

func (d *DriverServer) Connect(ctx context.Context) (RemoteConnection, error) {
	return NewRemoteConnectionServer(d.db)
}
