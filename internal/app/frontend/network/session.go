package network

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"quilldb/internal/app/server"
)

// sessionService is the RPC-visible surface for one client connection:
// net/rpc requires every method to have the (args, *reply) error shape,
// so this wraps the RemoteConnection/RemoteStatement/RemoteResultSet
// chain in a form that can be registered directly.
type sessionService struct {
	id  string
	db  *server.Engine
	log zerolog.Logger

	conn RemoteConnection
	stmt RemoteStatement
	rs   RemoteResultSet
}

func newSessionService(id string, db *server.Engine, log zerolog.Logger) *sessionService {
	return &sessionService{id: id, db: db, log: log}
}

type EmptyArgs struct{}
type EmptyReply struct{}

func (s *sessionService) Connect(args EmptyArgs, reply *EmptyReply) error {
	conn, err := NewRemoteConnectionServer(s.db)
	if err != nil {
		return err
	}
	s.conn = conn
	s.log.Info().Str("session", s.id).Msg("client connected")
	return nil
}

func (s *sessionService) CreateStatement(args EmptyArgs, reply *EmptyReply) error {
	if s.conn == nil {
		return fmt.Errorf("session %s: not connected", s.id)
	}
	stmt, err := s.conn.CreateStatement(context.Background())
	if err != nil {
		return err
	}
	s.stmt = stmt
	return nil
}

type ExecuteQueryArgs struct {
	Query string `json:"query"`
}

func (s *sessionService) ExecuteQuery(args ExecuteQueryArgs, reply *EmptyReply) error {
	if s.stmt == nil {
		return fmt.Errorf("session %s: no active statement", s.id)
	}
	rs, err := s.stmt.ExecuteQuery(context.Background(), args.Query)
	if err != nil {
		return err
	}
	s.rs = rs
	return nil
}

type ExecuteUpdateArgs struct {
	Command string `json:"command"`
}

type ExecuteUpdateReply struct {
	AffectedRecords int `json:"affectedRecords"`
}

func (s *sessionService) ExecuteUpdate(args ExecuteUpdateArgs, reply *ExecuteUpdateReply) error {
	if s.stmt == nil {
		return fmt.Errorf("session %s: no active statement", s.id)
	}
	n, err := s.stmt.ExecuteUpdate(context.Background(), args.Command)
	if err != nil {
		return err
	}
	reply.AffectedRecords = n
	return nil
}

type NextReply struct {
	HasNext bool `json:"hasNext"`
}

func (s *sessionService) Next(args EmptyArgs, reply *NextReply) error {
	if s.rs == nil {
		return fmt.Errorf("session %s: no active result set", s.id)
	}
	ok, err := s.rs.Next(context.Background())
	if err != nil {
		return err
	}
	reply.HasNext = ok
	return nil
}

type FieldArgs struct {
	Field string `json:"field"`
}

type GetIntReply struct {
	Value int `json:"value"`
}

func (s *sessionService) GetInt(args FieldArgs, reply *GetIntReply) error {
	if s.rs == nil {
		return fmt.Errorf("session %s: no active result set", s.id)
	}
	v, err := s.rs.GetInt(context.Background(), args.Field)
	if err != nil {
		return err
	}
	reply.Value = v
	return nil
}

type GetStringReply struct {
	Value string `json:"value"`
}

func (s *sessionService) GetString(args FieldArgs, reply *GetStringReply) error {
	if s.rs == nil {
		return fmt.Errorf("session %s: no active result set", s.id)
	}
	v, err := s.rs.GetString(context.Background(), args.Field)
	if err != nil {
		return err
	}
	reply.Value = v
	return nil
}

type ColumnMeta struct {
	Name        string `json:"name"`
	Type        int    `json:"type"`
	DisplaySize int    `json:"displaySize"`
}

type GetMetaDataReply struct {
	Columns []ColumnMeta `json:"columns"`
}

func (s *sessionService) GetMetaData(args EmptyArgs, reply *GetMetaDataReply) error {
	if s.rs == nil {
		return fmt.Errorf("session %s: no active result set", s.id)
	}
	ctx := context.Background()
	md, err := s.rs.GetMetaData(ctx)
	if err != nil {
		return err
	}
	count, err := md.GetColumnCount(ctx)
	if err != nil {
		return err
	}

	cols := make([]ColumnMeta, 0, count)
	for i := 1; i <= count; i++ {
		name, err := md.GetColumnName(ctx, i)
		if err != nil {
			return err
		}
		typ, err := md.GetColumnType(ctx, i)
		if err != nil {
			return err
		}
		size, err := md.GetColumnDisplaySize(ctx, i)
		if err != nil {
			return err
		}
		cols = append(cols, ColumnMeta{Name: name, Type: typ, DisplaySize: size})
	}
	reply.Columns = cols
	return nil
}

func (s *sessionService) CloseResultSet(args EmptyArgs, reply *EmptyReply) error {
	if s.rs == nil {
		return nil
	}
	err := s.rs.Close(context.Background())
	s.rs = nil
	return err
}

func (s *sessionService) Close(args EmptyArgs, reply *EmptyReply) error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close(context.Background())
	s.log.Info().Str("session", s.id).Msg("client disconnected")
	return err
}
