// Package network implements the database's RPC front end: a
// length-prefixed JSON protocol served over net/rpc, forwarding each
// call into a per-connection session backed directly by the engine.
package network

import (
	"net"
	"net/rpc"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quilldb/internal/app/server"
)

// Listener accepts client connections and serves one RPC session per
// connection, each running its requests against a shared engine.
type Listener struct {
	db  *server.Engine
	log zerolog.Logger
}

func NewListener(db *server.Engine, log zerolog.Logger) *Listener {
	return &Listener{db: db, log: log}
}

// ListenAndServe blocks, accepting connections at addr until the
// listener fails or the process is killed.
func (l *Listener) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	l.log.Info().Str("address", addr).Msg("RPC front end listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go l.serveConn(conn)
	}
}

func (l *Listener) serveConn(conn net.Conn) {
	sessionID := uuid.NewString()
	lg := l.log.With().Str("session", sessionID).Logger()

	svc := newSessionService(sessionID, l.db, lg)
	srv := rpc.NewServer()
	if err := srv.RegisterName("Session", svc); err != nil {
		lg.Error().Err(err).Msg("registering session service")
		conn.Close()
		return
	}

	srv.ServeCodec(newFrameCodec(conn))
}
