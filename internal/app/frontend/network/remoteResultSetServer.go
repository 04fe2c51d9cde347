package network

import (
	"context"
	"strings"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
)

type RemoteResultSetServer struct {
	RemoteResultSet
	s     interfaces.Scan
	sch   *record.Schema
	rConn *RemoteConnectionServer
}

func NewRemoteSetServer(plan interfaces.Plan, rConn *RemoteConnectionServer) (RemoteResultSet, error) {
	s, err := plan.Open()
	if err != nil {
		return nil, err
	}
	return &RemoteResultSetServer{
		s:     s,
		sch:   plan.Schema(),
		rConn: rConn,
	}, nil
}

func (rs *RemoteResultSetServer) Next(ctx context.Context) (bool, error) {
	ok, err := rs.s.Next()
	if err != nil {
		rs.rConn.Rollback()
		return false, err
	}
	return ok, nil
}

func (rs *RemoteResultSetServer) GetInt(ctx context.Context, fldName string) (int, error) {
	fldName = strings.ToLower(fldName)
	v, err := rs.s.GetInt(fldName)
	if err != nil {
		rs.rConn.Rollback()
		return 0, err
	}
	return v, nil
}

func (rs *RemoteResultSetServer) GetString(ctx context.Context, fldName string) (string, error) {
	fldName = strings.ToLower(fldName)
	v, err := rs.s.GetString(fldName)
	if err != nil {
		rs.rConn.Rollback()
		return "", err
	}
	return v, nil
}

func (rs *RemoteResultSetServer) GetMetaData(ctx context.Context) (RemoteMetaData, error) {
	return NewRemoteMetaDataServer(rs.sch), nil
}

func (rs *RemoteResultSetServer) Close(ctx context.Context) error {
	if err := rs.s.Close(); err != nil {
		return err
	}
	return rs.rConn.Commit()
}
